package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/reelpop-inc/reelpop/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	Email      sharedConfig.EmailConfig      `mapstructure:"email"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Stripe     sharedConfig.StripeConfig     `mapstructure:"stripe"`
	Plans      sharedConfig.PlansConfig      `mapstructure:"plans"`
	Generation sharedConfig.GenerationConfig `mapstructure:"generation"`
	Storage    sharedConfig.StorageConfig    `mapstructure:"storage"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"rate_limit"`
}

// DefaultJWTSecret is the placeholder secret shipped in the defaults. It is
// refused in production.
const DefaultJWTSecret = "change-me-in-production"

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is tolerated so the service can run from env alone.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("REELPOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// ValidateForServer rejects settings that would let a production server
// accept forged access tokens.
func (c *Config) ValidateForServer() error {
	if !c.Server.IsProduction() {
		return nil
	}
	secret := strings.TrimSpace(c.Auth.JWTSecret)
	if secret == "" || secret == DefaultJWTSecret {
		return fmt.Errorf("auth.jwt_secret must be set to a non-default value in production")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.site_url", "http://localhost:3000")

	// Database
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "reelpop_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "authenticated")

	// Email
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "")
	v.SetDefault("email.from_name", "Reelpop")

	// Stripe
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.price_basic", "")
	v.SetDefault("stripe.price_pro", "")

	// Redis (empty host disables Redis and falls back to in-memory stores)
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Plans
	v.SetDefault("plans.free_limit", 3)
	v.SetDefault("plans.basic_limit", 30)
	v.SetDefault("plans.pro_limit", -1)

	// Generation provider
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.base_url", "https://ark.ap-southeast.bytepluses.com/api/v3")
	v.SetDefault("generation.model", "seedance-2.0")
	v.SetDefault("generation.use_mock", false)
	v.SetDefault("generation.request_timeout", 30)
	v.SetDefault("generation.download_timeout", 120)
	v.SetDefault("generation.allowed_hosts", []string{"volces.com", "bytepluses.com", "byteplus.com"})

	// Storage
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.use_path_style", false)

	// Rate limits
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.generate.limit", 5)
	v.SetDefault("rate_limit.generate.window", 60)
	v.SetDefault("rate_limit.upload.limit", 15)
	v.SetDefault("rate_limit.upload.window", 60)
	v.SetDefault("rate_limit.checkout.limit", 10)
	v.SetDefault("rate_limit.checkout.window", 60)
	v.SetDefault("rate_limit.general.limit", 60)
	v.SetDefault("rate_limit.general.window", 60)
}
