package config

import "testing"

func TestValidateDevAllowsMissingSecrets(t *testing.T) {
	cfg := &Config{Env: "development", BlobURLTTL: 900}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected dev config to validate, got: %v", err)
	}
}

func TestValidateProductionRequiresAuthSecret(t *testing.T) {
	cfg := &Config{Env: "production", BlobURLTTL: 900}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing AUTH_SECRET in production")
	}

	cfg.AuthSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short AUTH_SECRET")
	}

	cfg.AuthSecret = "0123456789abcdef0123456789abcdef"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing BLOB_SIGN_KEY in production")
	}

	cfg.BlobSignKey = "another-long-enough-signing-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid production config, got: %v", err)
	}
}

func TestValidateRejectsNonPositiveBlobTTL(t *testing.T) {
	cfg := &Config{Env: "development", BlobURLTTL: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero BLOB_URL_TTL_SECONDS")
	}
}
