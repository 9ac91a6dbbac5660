// Package config loads client configuration for applications embedding the
// Smartpay SDK from the environment, with optional .env bootstrap.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/smartpay-co/smartpay-go/pkg/logger"
)

var ErrSecretKeyMissing = errors.New("SMARTPAY_SECRET_KEY is not set")

type Config struct {
	SecretKey   string `mapstructure:"secret_key"`
	PublicKey   string `mapstructure:"public_key"`
	APIPrefix   string `mapstructure:"api_prefix"`
	CheckoutURL string `mapstructure:"checkout_url"`
	MaxRetries  int    `mapstructure:"max_retries"`

	Logger logger.Config `mapstructure:"logger"`
}

// Load reads SMARTPAY_* environment variables, merging a .env file from the
// working directory first when one exists.
func Load() (*Config, error) {
	// A missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	v := viper.New()

	v.SetEnvPrefix("SMARTPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVariables(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.SecretKey == "" {
		return nil, ErrSecretKeyMissing
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_retries", 1)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

func bindEnvVariables(v *viper.Viper) {
	keys := []string{
		"secret_key",
		"public_key",
		"api_prefix",
		"checkout_url",
		"max_retries",
		"logger.level",
		"logger.format",
		"logger.output",
		"logger.file_path",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
