package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Argon2   Argon2Config
	Mail     MailConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	Environment string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	URL string // optional; enables the asynq mail queue
}

type JWTConfig struct {
	Secret             string
	Issuer             string
	SessionExpiry      int64 // seconds
	VerificationExpiry int64 // seconds
}

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

type MailConfig struct {
	Driver           string // "api" or "log"
	APIURL           string
	APIKey           string
	From             string
	VerifyTemplateID string
	ResetTemplateID  string
}

type AppConfig struct {
	BaseURL     string   // public base URL embedded in emailed links
	CORSOrigins []string // origins allowed credentialed CORS; empty disables CORS
}

// Load builds the config from the environment (plus an optional
// CONFIG_FILE). It fails hard when a required setting is absent so the
// process refuses to start misconfigured.
func Load() (*Config, error) {
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		_ = viper.ReadInConfig()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			URL: viper.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			Issuer:             getEnvOrDefault("JWT_ISSUER", "auth-backend"),
			SessionExpiry:      viper.GetInt64("JWT_SESSION_EXPIRY"),
			VerificationExpiry: viper.GetInt64("JWT_VERIFICATION_EXPIRY"),
		},
		Argon2: Argon2Config{
			Memory:      uint32(viper.GetInt("ARGON2_MEMORY")),
			Iterations:  uint32(viper.GetInt("ARGON2_ITERATIONS")),
			Parallelism: uint8(viper.GetInt("ARGON2_PARALLELISM")),
		},
		Mail: MailConfig{
			Driver:           getEnvOrDefault("MAIL_DRIVER", "api"),
			APIURL:           getEnvOrDefault("MAIL_API_URL", "https://api.sendgrid.com/v3/mail/send"),
			APIKey:           viper.GetString("MAIL_API_KEY"),
			From:             getEnvOrDefault("MAIL_FROM", "no-reply@localhost"),
			VerifyTemplateID: viper.GetString("MAIL_VERIFY_TEMPLATE_ID"),
			ResetTemplateID:  viper.GetString("MAIL_RESET_TEMPLATE_ID"),
		},
		App: AppConfig{
			BaseURL:     getEnvOrDefault("BASE_URL", "http://localhost:8080"),
			CORSOrigins: splitNonEmpty(viper.GetString("CORS_ORIGINS")),
		},
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Mail.Driver == "api" && cfg.Mail.APIKey == "" {
		return nil, fmt.Errorf("MAIL_API_KEY is required (or set MAIL_DRIVER=log)")
	}
	if cfg.JWT.SessionExpiry <= 0 {
		cfg.JWT.SessionExpiry = 7 * 24 * 3600
	}
	if cfg.JWT.VerificationExpiry <= 0 {
		cfg.JWT.VerificationExpiry = 3600
	}
	if cfg.Argon2.Memory == 0 {
		cfg.Argon2.Memory = 64 * 1024
	}
	if cfg.Argon2.Iterations == 0 {
		cfg.Argon2.Iterations = 3
	}
	if cfg.Argon2.Parallelism == 0 {
		cfg.Argon2.Parallelism = 2
	}
	return cfg, nil
}

// IsProduction reports whether the server should set Secure cookies.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
