package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port    string
	BaseURL string
	Env     string

	DatabaseURL string
	AuthSecret  string

	Timezone       *time.Location
	SessionTimeout time.Duration
	OTPExpiry      time.Duration

	HistoryTruncate int
	HistoryPageSize int

	CORSOrigins  []string
	CookieSecure bool
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("BASE_URL", "")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("AUTH_SECRET", "")
	v.SetDefault("APP_TIMEZONE", "Asia/Ho_Chi_Minh")
	v.SetDefault("SESSION_TIMEOUT", 1800)
	v.SetDefault("OTP_EXPIRY_MINUTES", 10)
	v.SetDefault("HISTORY_TRUNCATE", 60)
	v.SetDefault("HISTORY_PAGE_SIZE", 20)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("COOKIE_SECURE", false)
}

// Load reads defaults, then the optional dotenv file named by APP_CONFIG
// (default ".env"), then the process environment.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = ".env"
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("PORT"),
		BaseURL:         v.GetString("BASE_URL"),
		Env:             v.GetString("APP_ENV"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		AuthSecret:      v.GetString("AUTH_SECRET"),
		SessionTimeout:  time.Duration(v.GetInt("SESSION_TIMEOUT")) * time.Second,
		OTPExpiry:       time.Duration(v.GetInt("OTP_EXPIRY_MINUTES")) * time.Minute,
		HistoryTruncate: v.GetInt("HISTORY_TRUNCATE"),
		HistoryPageSize: v.GetInt("HISTORY_PAGE_SIZE"),
		CookieSecure:    v.GetBool("COOKIE_SECURE"),
	}

	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.AuthSecret == "" {
		return nil, errors.New("AUTH_SECRET is not set")
	}
	if cfg.SessionTimeout <= 0 {
		return nil, fmt.Errorf("SESSION_TIMEOUT must be positive, got %v", cfg.SessionTimeout)
	}

	loc, err := time.LoadLocation(v.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	return cfg, nil
}
