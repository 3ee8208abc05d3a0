package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockdesk/internal/pkg/config"
	"github.com/ammerola/stockdesk/test/helpers"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Chdir(t.TempDir())

	cfg, err := config.Load(helpers.TestLogger(), nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.PageSize)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, config.BackendFile, cfg.Session.Backend)
	assert.Equal(t, "stockdesk:session", cfg.Session.KeyPrefix)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddress())
	assert.Equal(t, "127.0.0.1:3000", cfg.GetStubAddress())
	assert.Equal(t, []string{"*"}, cfg.Stub.AllowedOrigins)
	assert.Equal(t, 1.0, cfg.App.LogSampleRate)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Chdir(t.TempDir())
	t.Setenv("STOCKDESK_API_URL", "https://inventory.example.com/api")
	t.Setenv("STOCKDESK_PAGE_SIZE", "10")
	t.Setenv("API_TIMEOUT", "7s")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_SAMPLE_RATE", "0.25")
	t.Setenv("TRUSTED_PROXIES", "127.0.0.1,10.0.0.2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("page-size", 5, "")
	flags.String("api-url", "", "")
	require.NoError(t, flags.Parse([]string{"--page-size=20"}))

	cfg, err := config.Load(helpers.TestLogger(), flags)
	require.NoError(t, err)

	assert.Equal(t, "https://inventory.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout)
	assert.Equal(t, config.BackendRedis, cfg.Session.Backend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Stub.AllowedOrigins)
	assert.Equal(t, 0.25, cfg.App.LogSampleRate)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.2"}, cfg.Stub.TrustedProxies)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "bad_url", env: map[string]string{"STOCKDESK_API_URL": "ftp://x"}, wantErr: config.ErrInvalidConfig},
		{name: "zero_page_size", env: map[string]string{"STOCKDESK_PAGE_SIZE": "0"}, wantErr: config.ErrMissingRequiredConfig},
		{name: "negative_page_size", env: map[string]string{"STOCKDESK_PAGE_SIZE": "-2"}, wantErr: config.ErrInvalidConfig},
		{name: "sample_rate_above_one", env: map[string]string{"LOG_SAMPLE_RATE": "1.5"}, wantErr: config.ErrInvalidConfig},
		{name: "unknown_backend", env: map[string]string{"SESSION_BACKEND": "cookie"}, wantErr: config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "test")
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load(helpers.TestLogger(), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Production(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.App.Environment = "production"
	cfg.API.BaseURL = "https://inventory.example.com/api"
	cfg.Stub.AllowedOrigins = []string{"https://inventory.example.com"}
	cfg.Session.Backend = config.BackendFile

	cfg.Stub.JWTSecret = config.DefaultJWTSecret
	assert.Error(t, cfg.Validate())

	cfg.Stub.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.Stub.AdminPassword = "admin123"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)

	cfg.Stub.AdminPassword = "s3cure-stub-password"
	assert.NoError(t, cfg.Validate())

	cfg.API.BaseURL = "http://inventory.example.com/api"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
}

type fakeSecrets struct {
	value string
	err   error
	calls int
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{Name: in.SecretId, SecretString: aws.String(f.value)}, nil
}

func TestAWSSecretsProvider_Caches(t *testing.T) {
	fake := &fakeSecrets{value: `{"STOCKDESK_EMAIL":"bot@example.com","STOCKDESK_PASSWORD":"pw"}`}
	sp := config.NewAWSSecretsProviderFromClient(fake, "stockdesk/login", helpers.TestLogger())
	ctx := context.Background()

	got, err := sp.Lookup(ctx, config.SecretEmail)
	require.NoError(t, err)
	assert.Equal(t, "bot@example.com", got[config.SecretEmail])

	_, err = sp.Lookup(ctx, config.SecretPassword)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)

	got, err = sp.Lookup(ctx, "MISSING")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, fake.calls)

	sp.Invalidate()
	_, err = sp.Lookup(ctx, config.SecretEmail)
	require.NoError(t, err)
	assert.Equal(t, 3, fake.calls)
}

func TestLoginCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("config_values_win", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		cfg.Credentials.Email, cfg.Credentials.Password = "a@example.com", "pw"
		email, password, err := config.LoginCredentials(ctx, cfg, config.EnvSecrets{})
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", email)
		assert.Equal(t, "pw", password)
	})

	t.Run("from_secrets_manager", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		fake := &fakeSecrets{value: `{"STOCKDESK_EMAIL":"bot@example.com","STOCKDESK_PASSWORD":"pw"}`}
		email, password, err := config.LoginCredentials(ctx, cfg,
			config.NewAWSSecretsProviderFromClient(fake, "s", helpers.TestLogger()))
		require.NoError(t, err)
		assert.Equal(t, "bot@example.com", email)
		assert.Equal(t, "pw", password)
	})

	t.Run("missing", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		_, _, err := config.LoginCredentials(ctx, cfg,
			config.NewAWSSecretsProviderFromClient(&fakeSecrets{value: `{}`}, "s", helpers.TestLogger()))
		assert.ErrorIs(t, err, config.ErrMissingRequiredConfig)
	})

	t.Run("provider_error", func(t *testing.T) {
		cfg := helpers.LoadTestConfig()
		_, _, err := config.LoginCredentials(ctx, cfg,
			config.NewAWSSecretsProviderFromClient(&fakeSecrets{err: errors.New("denied")}, "s", helpers.TestLogger()))
		assert.Error(t, err)
	})
}
