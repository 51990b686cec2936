package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("GENAI_MODEL", "")
	t.Setenv("MOOD_SYNC_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Server.Addr)
	}
	if cfg.AI.Enabled() {
		t.Error("expected generative service disabled without a credential")
	}
	if cfg.AI.Temperature == nil || *cfg.AI.Temperature != 0.7 {
		t.Errorf("expected default temperature 0.7, got %v", cfg.AI.Temperature)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected default session ttl 24h, got %v", cfg.Auth.SessionTTL)
	}
	if cfg.Mood.RemoteEnabled() {
		t.Error("expected remote mood source disabled by default")
	}
	if cfg.Mood.Timeout != 5*time.Second {
		t.Errorf("expected default mood timeout 5s, got %v", cfg.Mood.Timeout)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without JWT_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9999")
	t.Setenv("GENAI_API_KEY", "sk-test")
	t.Setenv("GENAI_MODEL", "test-model")
	t.Setenv("GENAI_TEMPERATURE", "0.2")
	t.Setenv("GENAI_MAX_TOKENS", "512")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("MOOD_SYNC_URL", "https://moods.example.com")
	t.Setenv("MOOD_SYNC_TIMEOUT", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected addr :9999, got %q", cfg.Server.Addr)
	}
	if !cfg.AI.Enabled() {
		t.Error("expected generative service enabled")
	}
	if cfg.AI.Temperature == nil || *cfg.AI.Temperature != 0.2 {
		t.Errorf("unexpected temperature: %v", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens == nil || *cfg.AI.MaxTokens != 512 {
		t.Errorf("unexpected max tokens: %v", cfg.AI.MaxTokens)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour {
		t.Errorf("unexpected session ttl: %v", cfg.Auth.SessionTTL)
	}
	if !cfg.Mood.RemoteEnabled() || cfg.Mood.Timeout != 9*time.Second {
		t.Errorf("unexpected mood config: %+v", cfg.Mood)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("temperature", func(t *testing.T) {
		t.Setenv("GENAI_TEMPERATURE", "warm")
		if _, err := Load(); err == nil {
			t.Fatal("expected an error for malformed temperature")
		}
	})

	t.Run("port with spaces", func(t *testing.T) {
		t.Setenv("GENAI_TEMPERATURE", "")
		t.Setenv("PORT", "80 80")
		if _, err := Load(); err == nil {
			t.Fatal("expected an error for malformed port")
		}
	})
}
