package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "STORE_TIMEOUT", "MONGO_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.StoreBackend != BackendSQLite {
		t.Errorf("expected default backend %q, got %q", BackendSQLite, cfg.StoreBackend)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %v", cfg.StoreTimeout)
	}
	if cfg.MongoDB != "fintrack" {
		t.Errorf("expected default mongo database, got %q", cfg.MongoDB)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", BackendMongo)
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("DIGEST_SCHEDULE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.StoreBackend != BackendMongo {
		t.Errorf("expected backend %q, got %q", BackendMongo, cfg.StoreBackend)
	}
	if cfg.StoreTimeout != 250*time.Millisecond {
		t.Errorf("expected timeout 250ms, got %v", cfg.StoreTimeout)
	}
	if cfg.DigestSchedule != "" {
		t.Errorf("expected empty digest schedule to be kept, got %q", cfg.DigestSchedule)
	}
	if Get() != cfg {
		t.Error("Get should return the last loaded config")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("expected fallback timeout 5s, got %v", cfg.StoreTimeout)
	}
}
