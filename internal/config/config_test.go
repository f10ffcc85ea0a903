package config

import (
	"strings"
	"testing"
	"time"
)

// TestParseDurationEnv проверяет разбор длительности из ENV.
func TestParseDurationEnv(t *testing.T) {
	t.Setenv("TEST_TTL", "36h")

	got, err := parseDurationEnv("TEST_TTL", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 36*time.Hour {
		t.Fatalf("expected 36h, got %v", got)
	}
}

// TestParseDurationEnvMissing проверяет значение по умолчанию.
func TestParseDurationEnvMissing(t *testing.T) {
	got, err := parseDurationEnv("MISSING_TTL", 24*time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 24*time.Hour {
		t.Fatalf("expected fallback 24h, got %v", got)
	}
}

// TestParseIntEnvInvalid проверяет ошибку при нечисловом значении.
func TestParseIntEnvInvalid(t *testing.T) {
	t.Setenv("TEST_PORT", "not-a-number")

	if _, err := parseIntEnv("TEST_PORT", 8080); err == nil {
		t.Fatal("expected error for non-integer value")
	}
}

// TestValidateRequiresPIN проверяет, что без PIN конфигурация невалидна.
func TestValidateRequiresPIN(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{Port: 8080},
		Store:  StoreConfig{Driver: "memory"},
		Auth: AuthConfig{
			JWTSecret:          "secret",
			SessionTTL:         24 * time.Hour,
			RateLimitPerMinute: 10,
			RateLimitBurst:     5,
		},
	}

	err := cfg.validate()
	if err == nil {
		t.Fatal("expected error for missing PIN")
	}
	if !strings.Contains(err.Error(), "AUTH_PIN") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestValidateStoreDriver проверяет допустимые драйверы хранилища.
func TestValidateStoreDriver(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{Port: 8080},
		Store:  StoreConfig{Driver: "cassandra"},
		Auth: AuthConfig{
			PIN:                "8981",
			JWTSecret:          "secret",
			SessionTTL:         24 * time.Hour,
			RateLimitPerMinute: 10,
			RateLimitBurst:     5,
		},
	}

	if err := cfg.validate(); err == nil {
		t.Fatal("expected error for unknown store driver")
	}
}
