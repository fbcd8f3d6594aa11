package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DefaultPaymentTimeout bounds a single call to the payment provider.
const DefaultPaymentTimeout = 10 * time.Second

type Config struct {
	ServerPort      string        `mapstructure:"SERVER_PORT"`
	AllowOrigin     string        `mapstructure:"CORS_ALLOW_ORIGIN"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	StripeSecretKey string        `mapstructure:"STRIPE_SECRET_KEY"`
	StripeAPIURL    string        `mapstructure:"STRIPE_API_URL"`
	PaymentTimeout  time.Duration `mapstructure:"PAYMENT_TIMEOUT"`
}

// TestMode reports whether no payment provider credential is configured.
func (c *Config) TestMode() bool {
	return c.StripeSecretKey == ""
}

// LoadConfig reads an optional .env file from path and overlays environment
// variables on top of it. A missing STRIPE_SECRET_KEY is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_API_URL", "")
	v.SetDefault("PAYMENT_TIMEOUT", DefaultPaymentTimeout.String())

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.LoadConfig: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	if cfg.PaymentTimeout <= 0 {
		cfg.PaymentTimeout = DefaultPaymentTimeout
	}
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}

	return &cfg, nil
}
