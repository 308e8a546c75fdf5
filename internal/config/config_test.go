package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "STORE_DRIVER", "GEMINI_MODEL", "GEMINI_TIMEOUT_SEC", "CORS_ORIGINS_OFFLINE"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Mode != ModeOffline {
		t.Errorf("mode: %q", cfg.Mode)
	}
	if cfg.HTTPAddr != ":8080" || cfg.StoreDriver != "sqlite" {
		t.Errorf("defaults: addr=%q store=%q", cfg.HTTPAddr, cfg.StoreDriver)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" || cfg.GeminiTimeout != 30*time.Second {
		t.Errorf("gemini defaults: model=%q timeout=%v", cfg.GeminiModel, cfg.GeminiTimeout)
	}
	if len(cfg.CORSOriginsOffline) != 2 {
		t.Errorf("offline origins: %v", cfg.CORSOriginsOffline)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("STORE_DRIVER", "fs")
	t.Setenv("DATA_DIR", "/tmp/lkpd")
	t.Setenv("GEMINI_TIMEOUT_SEC", "5")
	t.Setenv("CORS_ORIGINS_ONLINE", "https://a.example, https://b.example ,")

	cfg := FromEnv()
	if cfg.Mode != ModeOnline || cfg.StoreDriver != "fs" || cfg.DataDir != "/tmp/lkpd" {
		t.Errorf("overrides: %+v", cfg)
	}
	if cfg.GeminiTimeout != 5*time.Second {
		t.Errorf("timeout: %v", cfg.GeminiTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSOriginsOnline) != len(want) || cfg.CORSOriginsOnline[0] != want[0] || cfg.CORSOriginsOnline[1] != want[1] {
		t.Errorf("origins: %v", cfg.CORSOriginsOnline)
	}
}

func TestEnvIntBadValue(t *testing.T) {
	t.Setenv("GEMINI_TIMEOUT_SEC", "bukan-angka")
	if cfg := FromEnv(); cfg.GeminiTimeout != 30*time.Second {
		t.Errorf("bad int must fall back to default, got %v", cfg.GeminiTimeout)
	}
}
