package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("IDENTITY_POLICY", "")
	t.Setenv("QUERYGEN_PORT", "")

	cfg := FromEnv()
	if cfg.Port != "4000" {
		t.Errorf("expected default port 4000, got %s", cfg.Port)
	}
	if cfg.MaxFileSize != 16777216 {
		t.Errorf("expected 16 MiB default, got %d", cfg.MaxFileSize)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.IdentityPolicy != "strict" {
		t.Errorf("expected strict policy, got %s", cfg.IdentityPolicy)
	}
	if cfg.QueryGenPort != "5000" {
		t.Errorf("expected query generator on 5000, got %s", cfg.QueryGenPort)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_PER_MIN", "not-a-number")

	cfg := FromEnv()
	if cfg.MaxFileSize != 1024 {
		t.Errorf("expected 1024, got %d", cfg.MaxFileSize)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.LLMTimeout)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Errorf("expected fallback 30, got %d", cfg.RateLimitPerMin)
	}
}
