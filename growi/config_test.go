package growi

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("GROWI_DOMAIN", "https://wiki.example.com/")
	t.Setenv("GROWI_API_TOKEN", "secret")
	t.Setenv("GROWI_API_VERSION", "")
	t.Setenv("GROWI_CONNECT_SID", "")
	t.Setenv("GROWI_TIMEOUT", "")
	t.Setenv("GROWI_USER_AGENT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Domain != "https://wiki.example.com" {
		t.Errorf("domain = %q, trailing slash should be stripped", cfg.Domain)
	}
	if cfg.APIVersion != APIVersionV3 {
		t.Errorf("version = %q, want default v3", cfg.APIVersion)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s default", cfg.Timeout)
	}
	if cfg.HasSessionCookie() {
		t.Error("HasSessionCookie should be false without GROWI_CONNECT_SID")
	}
}

func TestLoadConfig_MissingDomain(t *testing.T) {
	t.Setenv("GROWI_DOMAIN", "")
	t.Setenv("GROWI_API_TOKEN", "secret")

	_, err := LoadConfig()
	if !IsKind(err, KindConfiguration) {
		t.Errorf("kind = %q, want configuration", KindOf(err))
	}
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("GROWI_DOMAIN", "https://wiki.example.com")
	t.Setenv("GROWI_API_TOKEN", "")

	_, err := LoadConfig()
	if !IsKind(err, KindConfiguration) {
		t.Errorf("kind = %q, want configuration", KindOf(err))
	}
}

func TestLoadConfig_BadVersion(t *testing.T) {
	t.Setenv("GROWI_DOMAIN", "https://wiki.example.com")
	t.Setenv("GROWI_API_TOKEN", "secret")
	t.Setenv("GROWI_API_VERSION", "2")

	_, err := LoadConfig()
	if !IsKind(err, KindConfiguration) {
		t.Errorf("kind = %q, want configuration", KindOf(err))
	}
}

func TestLoadConfig_SessionCookieAndTimeout(t *testing.T) {
	t.Setenv("GROWI_DOMAIN", "https://wiki.example.com")
	t.Setenv("GROWI_API_TOKEN", "secret")
	t.Setenv("GROWI_API_VERSION", "1")
	t.Setenv("GROWI_CONNECT_SID", "s%3Aabc")
	t.Setenv("GROWI_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIVersion != APIVersionV1 {
		t.Errorf("version = %q, want v1", cfg.APIVersion)
	}
	if !cfg.HasSessionCookie() {
		t.Error("HasSessionCookie should be true")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Timeout)
	}
}
