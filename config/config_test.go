package config

import (
	"errors"
	"testing"
)

func TestLoad_RequiresSecretKey(t *testing.T) {
	t.Setenv("SMARTPAY_SECRET_KEY", "")

	_, err := Load()
	if !errors.Is(err, ErrSecretKeyMissing) {
		t.Errorf("err = %v, want %v", err, ErrSecretKeyMissing)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SMARTPAY_SECRET_KEY", "sk_test_albwlejgsekcokfpdsvu")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SecretKey != "sk_test_albwlejgsekcokfpdsvu" {
		t.Errorf("SecretKey = %q", cfg.SecretKey)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want default 1", cfg.MaxRetries)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want default info", cfg.Logger.Level)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("Logger.Format = %q, want default json", cfg.Logger.Format)
	}
	if cfg.Logger.Output != "stdout" {
		t.Errorf("Logger.Output = %q, want default stdout", cfg.Logger.Output)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SMARTPAY_SECRET_KEY", "sk_test_albwlejgsekcokfpdsvu")
	t.Setenv("SMARTPAY_PUBLIC_KEY", "pk_test_albwlejgsekcokfpdsvu")
	t.Setenv("SMARTPAY_MAX_RETRIES", "4")
	t.Setenv("SMARTPAY_LOGGER_LEVEL", "debug")
	t.Setenv("SMARTPAY_LOGGER_FORMAT", "console")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.PublicKey != "pk_test_albwlejgsekcokfpdsvu" {
		t.Errorf("PublicKey = %q", cfg.PublicKey)
	}
	if cfg.MaxRetries != 4 {
		t.Errorf("MaxRetries = %d, want 4", cfg.MaxRetries)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q, want debug", cfg.Logger.Level)
	}
	if cfg.Logger.Format != "console" {
		t.Errorf("Logger.Format = %q, want console", cfg.Logger.Format)
	}
}
