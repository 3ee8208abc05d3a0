// internal/pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrMissingRequiredConfig = errors.New("missing required configuration")
	ErrInvalidConfig         = errors.New("invalid configuration")
)

// Session backends
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultJWTSecret is only acceptable outside production
const DefaultJWTSecret = "development-secret-change-in-production"

const defaultAdminPassword = "admin123"

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Remote API consumed by the client
	API APIConfig

	// Durable session store
	Session SessionConfig

	// Redis
	Redis RedisConfig

	// AWS
	AWS AWSConfig

	// Non-interactive login
	Credentials CredentialsConfig

	// Stub API server
	Stub StubConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	// LogSampleRate is the share of debug and info records kept, in (0, 1]
	LogSampleRate float64
	Debug         bool
}

// APIConfig holds the remote API settings
type APIConfig struct {
	BaseURL   string `required:"true"`
	PageSize  int    `required:"true"`
	Timeout   time.Duration
	UserAgent string
}

// SessionConfig selects and configures the session store
type SessionConfig struct {
	Backend   string `required:"true"`
	File      string
	KeyPrefix string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host            string
	Port            string
	Password        string
	DB              int
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdleConns    int
	PoolTimeout     time.Duration
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
}

// CredentialsConfig names where non-interactive login credentials live
type CredentialsConfig struct {
	Email      string
	Password   string
	SecretName string
}

// StubConfig holds the stub API server configuration
type StubConfig struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	JWTSecret         string
	JWTExpiration     time.Duration
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	TrustedProxies    []string
	AdminEmail        string
	AdminPassword     string
	AdminName         string
	SeedFile          string
}

// binding ties a config key to its environment variable, flag and default
type binding struct {
	key  string
	env  string
	flag string
	def  any
}

var bindings = []binding{
	{key: "app.name", env: "APP_NAME", def: "stockdesk"},
	{key: "app.version", env: "APP_VERSION", def: "dev"},
	{key: "log.level", env: "LOG_LEVEL", flag: "log-level", def: "info"},
	{key: "log.format", env: "LOG_FORMAT", flag: "log-format", def: "text"},
	{key: "log.sample_rate", env: "LOG_SAMPLE_RATE", def: 1.0},
	{key: "app.debug", env: "APP_DEBUG", flag: "debug", def: false},

	{key: "api.url", env: "STOCKDESK_API_URL", flag: "api-url", def: "http://localhost:3000/api"},
	{key: "api.page_size", env: "STOCKDESK_PAGE_SIZE", flag: "page-size", def: 5},
	{key: "api.timeout", env: "API_TIMEOUT", flag: "timeout", def: time.Duration(0)},
	{key: "api.user_agent", env: "STOCKDESK_USER_AGENT", def: "stockdesk"},

	{key: "session.backend", env: "SESSION_BACKEND", flag: "session", def: BackendFile},
	{key: "session.file", env: "SESSION_FILE", def: ""},
	{key: "session.key_prefix", env: "SESSION_KEY_PREFIX", def: "stockdesk:session"},

	{key: "redis.host", env: "REDIS_HOST", def: "localhost"},
	{key: "redis.port", env: "REDIS_PORT", def: "6379"},
	{key: "redis.password", env: "REDIS_PASSWORD", def: ""},
	{key: "redis.db", env: "REDIS_DB", def: 0},
	{key: "redis.max_retries", env: "REDIS_MAX_RETRIES", def: 3},
	{key: "redis.min_retry_backoff", env: "REDIS_MIN_RETRY_BACKOFF", def: 8 * time.Millisecond},
	{key: "redis.max_retry_backoff", env: "REDIS_MAX_RETRY_BACKOFF", def: 512 * time.Millisecond},
	{key: "redis.dial_timeout", env: "REDIS_DIAL_TIMEOUT", def: 5 * time.Second},
	{key: "redis.read_timeout", env: "REDIS_READ_TIMEOUT", def: 3 * time.Second},
	{key: "redis.write_timeout", env: "REDIS_WRITE_TIMEOUT", def: 3 * time.Second},
	{key: "redis.pool_size", env: "REDIS_POOL_SIZE", def: 4},
	{key: "redis.min_idle_conns", env: "REDIS_MIN_IDLE_CONNS", def: 0},
	{key: "redis.pool_timeout", env: "REDIS_POOL_TIMEOUT", def: 4 * time.Second},

	{key: "aws.region", env: "AWS_REGION", def: "us-east-1"},
	{key: "aws.access_key_id", env: "AWS_ACCESS_KEY_ID", def: ""},
	{key: "aws.secret_access_key", env: "AWS_SECRET_ACCESS_KEY", def: ""},
	{key: "aws.s3_endpoint", env: "AWS_S3_ENDPOINT", def: ""},
	{key: "aws.s3_path_style", env: "AWS_S3_PATH_STYLE", def: false},

	{key: "credentials.email", env: "STOCKDESK_EMAIL", def: ""},
	{key: "credentials.password", env: "STOCKDESK_PASSWORD", def: ""},
	{key: "credentials.secret", env: "STOCKDESK_CREDENTIALS_SECRET", def: ""},

	{key: "stub.host", env: "STUB_HOST", flag: "host", def: "127.0.0.1"},
	{key: "stub.port", env: "STUB_PORT", flag: "port", def: "3000"},
	{key: "stub.read_timeout", env: "STUB_READ_TIMEOUT", def: 15 * time.Second},
	{key: "stub.write_timeout", env: "STUB_WRITE_TIMEOUT", def: 15 * time.Second},
	{key: "stub.idle_timeout", env: "STUB_IDLE_TIMEOUT", def: 60 * time.Second},
	{key: "stub.shutdown_timeout", env: "STUB_SHUTDOWN_TIMEOUT", def: 10 * time.Second},
	{key: "stub.jwt_secret", env: "STUB_JWT_SECRET", def: DefaultJWTSecret},
	{key: "stub.jwt_expiration", env: "STUB_JWT_EXPIRATION", def: 24 * time.Hour},
	{key: "stub.rate_limit_requests", env: "RATE_LIMIT_REQUESTS", def: 100},
	{key: "stub.rate_limit_duration", env: "RATE_LIMIT_DURATION", def: time.Minute},
	{key: "stub.allowed_origins", env: "ALLOWED_ORIGINS", def: "*"},
	{key: "stub.trusted_proxies", env: "TRUSTED_PROXIES", def: ""},
	{key: "stub.admin_email", env: "STUB_ADMIN_EMAIL", def: "admin@stockdesk.local"},
	{key: "stub.admin_password", env: "STUB_ADMIN_PASSWORD", def: defaultAdminPassword},
	{key: "stub.admin_name", env: "STUB_ADMIN_NAME", def: "Administrador"},
	{key: "stub.seed_file", env: "STUB_SEED_FILE", flag: "seed", def: ""},
}

// Load loads configuration from the environment, an optional stockdesk.yaml
// and any flags already parsed into flags (which may be nil).
func Load(logger *slog.Logger, flags *pflag.FlagSet) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables")
		} else {
			logger.Debug(".env file loaded successfully")
		}
	}

	v := viper.New()
	if err := bind(v, flags); err != nil {
		return nil, err
	}

	v.SetConfigName("stockdesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "stockdesk"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logger.Debug("config file loaded", slog.String("path", v.ConfigFileUsed()))
	}

	cfg := fromViper(v, env)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func bind(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b.env, err)
		}
		if flags == nil || b.flag == "" {
			continue
		}
		if f := flags.Lookup(b.flag); f != nil {
			if err := v.BindPFlag(b.key, f); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", b.flag, err)
			}
		}
	}
	return nil
}

func fromViper(v *viper.Viper, env string) *Config {
	return &Config{
		App: AppConfig{
			Name:          v.GetString("app.name"),
			Environment:   env,
			Version:       v.GetString("app.version"),
			LogLevel:      v.GetString("log.level"),
			LogFormat:     v.GetString("log.format"),
			LogSampleRate: v.GetFloat64("log.sample_rate"),
			Debug:         v.GetBool("app.debug"),
		},
		API: APIConfig{
			BaseURL:   strings.TrimSpace(v.GetString("api.url")),
			PageSize:  v.GetInt("api.page_size"),
			Timeout:   v.GetDuration("api.timeout"),
			UserAgent: v.GetString("api.user_agent"),
		},
		Session: SessionConfig{
			Backend:   strings.ToLower(v.GetString("session.backend")),
			File:      v.GetString("session.file"),
			KeyPrefix: v.GetString("session.key_prefix"),
		},
		Redis: RedisConfig{
			Host:            v.GetString("redis.host"),
			Port:            v.GetString("redis.port"),
			Password:        v.GetString("redis.password"),
			DB:              v.GetInt("redis.db"),
			MaxRetries:      v.GetInt("redis.max_retries"),
			MinRetryBackoff: v.GetDuration("redis.min_retry_backoff"),
			MaxRetryBackoff: v.GetDuration("redis.max_retry_backoff"),
			DialTimeout:     v.GetDuration("redis.dial_timeout"),
			ReadTimeout:     v.GetDuration("redis.read_timeout"),
			WriteTimeout:    v.GetDuration("redis.write_timeout"),
			PoolSize:        v.GetInt("redis.pool_size"),
			MinIdleConns:    v.GetInt("redis.min_idle_conns"),
			PoolTimeout:     v.GetDuration("redis.pool_timeout"),
		},
		AWS: AWSConfig{
			Region:          v.GetString("aws.region"),
			AccessKeyID:     v.GetString("aws.access_key_id"),
			SecretAccessKey: v.GetString("aws.secret_access_key"),
			S3Endpoint:      v.GetString("aws.s3_endpoint"),
			UsePathStyle:    v.GetBool("aws.s3_path_style"),
		},
		Credentials: CredentialsConfig{
			Email:      v.GetString("credentials.email"),
			Password:   v.GetString("credentials.password"),
			SecretName: v.GetString("credentials.secret"),
		},
		Stub: StubConfig{
			Host:              v.GetString("stub.host"),
			Port:              v.GetString("stub.port"),
			ReadTimeout:       v.GetDuration("stub.read_timeout"),
			WriteTimeout:      v.GetDuration("stub.write_timeout"),
			IdleTimeout:       v.GetDuration("stub.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("stub.shutdown_timeout"),
			JWTSecret:         v.GetString("stub.jwt_secret"),
			JWTExpiration:     v.GetDuration("stub.jwt_expiration"),
			RateLimitRequests: v.GetInt("stub.rate_limit_requests"),
			RateLimitDuration: v.GetDuration("stub.rate_limit_duration"),
			AllowedOrigins:    splitList(v.GetString("stub.allowed_origins")),
			TrustedProxies:    splitList(v.GetString("stub.trusted_proxies")),
			AdminEmail:        v.GetString("stub.admin_email"),
			AdminPassword:     v.GetString("stub.admin_password"),
			AdminName:         v.GetString("stub.admin_name"),
			SeedFile:          v.GetString("stub.seed_file"),
		},
	}
}

// Validate runs the validators that apply to the environment
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{}, &StubSecurityValidator{})
	}

	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// GetRedisAddress returns host:port for the Redis client
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetStubAddress returns the formatted stub server address
func (c *Config) GetStubAddress() string {
	return fmt.Sprintf("%s:%s", c.Stub.Host, c.Stub.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
