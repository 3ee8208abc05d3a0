// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Secret keys holding non-interactive login credentials
const (
	SecretEmail    = "STOCKDESK_EMAIL"
	SecretPassword = "STOCKDESK_PASSWORD"
)

// SecretsProvider resolves named secrets. Keys it does not know are left out
// of the result.
type SecretsProvider interface {
	Lookup(ctx context.Context, keys ...string) (map[string]string, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client in use
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsProvider reads one Secrets Manager secret whose value is a JSON
// object of string keys, and keeps it for ttl.
type AWSSecretsProvider struct {
	client     SecretsManagerAPI
	secretName string
	ttl        time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	values  map[string]string
	fetched time.Time
}

// EnvSecrets reads secrets from the process environment
type EnvSecrets struct{}

var (
	_ SecretsProvider = (*AWSSecretsProvider)(nil)
	_ SecretsProvider = EnvSecrets{}
)

// NewAWSSecretsProvider loads the default AWS config for region
func NewAWSSecretsProvider(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewAWSSecretsProviderFromClient(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

// NewAWSSecretsProviderFromClient wraps an existing client
func NewAWSSecretsProviderFromClient(client SecretsManagerAPI, secretName string, logger *slog.Logger) *AWSSecretsProvider {
	return &AWSSecretsProvider{
		client:     client,
		secretName: secretName,
		ttl:        5 * time.Minute,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// Lookup returns the requested keys, fetching the secret when the cached copy
// is stale or lacks one of them
func (p *AWSSecretsProvider) Lookup(ctx context.Context, keys ...string) (map[string]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.values == nil || time.Since(p.fetched) >= p.ttl || !hasAll(p.values, keys) {
		if err := p.fetch(ctx); err != nil {
			return nil, err
		}
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if val, ok := p.values[key]; ok {
			out[key] = val
		} else {
			p.logger.WarnContext(ctx, "key missing from secret",
				slog.String("secret_name", p.secretName),
				slog.String("key", key))
		}
	}
	return out, nil
}

// Invalidate forces the next Lookup to hit Secrets Manager
func (p *AWSSecretsProvider) Invalidate() {
	p.mu.Lock()
	p.values = nil
	p.mu.Unlock()
}

func (p *AWSSecretsProvider) fetch(ctx context.Context) error {
	p.logger.DebugContext(ctx, "fetching secret", slog.String("secret_name", p.secretName))

	result, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(p.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return fmt.Errorf("failed to get secret value: %w", err)
	}
	if result.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", p.secretName)
	}

	values := map[string]string{}
	if err := json.Unmarshal([]byte(*result.SecretString), &values); err != nil {
		return fmt.Errorf("failed to parse secret JSON: %w", err)
	}
	p.values, p.fetched = values, time.Now()
	return nil
}

func hasAll(values map[string]string, keys []string) bool {
	for _, key := range keys {
		if _, ok := values[key]; !ok {
			return false
		}
	}
	return true
}

// Lookup returns the keys that are set and non-empty
func (EnvSecrets) Lookup(_ context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			out[key] = val
		}
	}
	return out, nil
}

// NewSecretsProvider picks Secrets Manager when a secret name is configured
// and the environment otherwise.
func NewSecretsProvider(ctx context.Context, cfg *Config, logger *slog.Logger) (SecretsProvider, error) {
	if cfg.Credentials.SecretName == "" {
		return EnvSecrets{}, nil
	}
	return NewAWSSecretsProvider(ctx, cfg.AWS.Region, cfg.Credentials.SecretName, logger)
}

// LoginCredentials returns the email and password for non-interactive login.
// Values already present in cfg win over the provider.
func LoginCredentials(ctx context.Context, cfg *Config, provider SecretsProvider) (email, password string, err error) {
	email, password = cfg.Credentials.Email, cfg.Credentials.Password
	if email != "" && password != "" {
		return email, password, nil
	}

	secrets, err := provider.Lookup(ctx, SecretEmail, SecretPassword)
	if err != nil {
		return "", "", fmt.Errorf("failed to load login credentials: %w", err)
	}
	if email == "" {
		email = secrets[SecretEmail]
	}
	if password == "" {
		password = secrets[SecretPassword]
	}
	if email == "" || password == "" {
		return "", "", fmt.Errorf("%w: %s and %s", ErrMissingRequiredConfig, SecretEmail, SecretPassword)
	}
	return email, password, nil
}
