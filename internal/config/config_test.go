package config

import "testing"

func TestLoadUsesFallbackDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default api port 8080, got %q", cfg.APIPort)
	}
	if cfg.NATSSubject != "briefs.uploaded" {
		t.Fatalf("expected default subject briefs.uploaded, got %q", cfg.NATSSubject)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Fatalf("expected default upload cap 10MiB, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("expected default rate limit 20 rps, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9191")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("API_RATE_LIMIT_BURST", "5")
	t.Setenv("ALLOWED_EXTENSIONS", ".txt,.pdf")

	cfg := Load()
	if cfg.APIPort != "9191" {
		t.Fatalf("expected port override, got %q", cfg.APIPort)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("expected upload cap 1048576, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitBurst != 5 {
		t.Fatalf("expected burst 5, got %d", cfg.APIRateLimitBurst)
	}
	if cfg.AllowedExtensions != ".txt,.pdf" {
		t.Fatalf("expected extension override, got %q", cfg.AllowedExtensions)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	cfg := Load()
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("expected fallback rps 20 for malformed value, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Fatalf("expected fallback upload cap for malformed value, got %d", cfg.MaxUploadBytes)
	}
}
