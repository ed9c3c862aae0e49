package config

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("MEDTRACK_TEST_INT", "42")
	t.Setenv("MEDTRACK_TEST_BAD_INT", "many")
	t.Setenv("MEDTRACK_TEST_DURATION", "90s")
	t.Setenv("MEDTRACK_TEST_BAD_DURATION", "soon")
	t.Setenv("MEDTRACK_TEST_STRING", "value")
	t.Setenv("MEDTRACK_TEST_BOOL", "true")
	t.Setenv("MEDTRACK_TEST_BAD_BOOL", "perhaps")

	if got := envInt("MEDTRACK_TEST_INT", 1); got != 42 {
		t.Errorf("envInt = %d, want 42", got)
	}
	if got := envInt("MEDTRACK_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("envInt with bad value = %d, want default 7", got)
	}
	if got := envInt("MEDTRACK_TEST_UNSET", 3); got != 3 {
		t.Errorf("envInt unset = %d, want default 3", got)
	}
	if got := envDuration("MEDTRACK_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("envDuration = %v, want 90s", got)
	}
	if got := envDuration("MEDTRACK_TEST_BAD_DURATION", time.Minute); got != time.Minute {
		t.Errorf("envDuration with bad value = %v, want default 1m", got)
	}
	if got := envString("MEDTRACK_TEST_STRING", "def"); got != "value" {
		t.Errorf("envString = %q, want value", got)
	}
	if got := envBool("MEDTRACK_TEST_BOOL", false); !got {
		t.Error("envBool = false, want true")
	}
	if got := envBool("MEDTRACK_TEST_BAD_BOOL", false); got {
		t.Error("envBool with bad value = true, want default false")
	}
	if got := envString("MEDTRACK_TEST_UNSET", "def"); got != "def" {
		t.Errorf("envString unset = %q, want def", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg := Load()

	if cfg.DBDriver != "memory" || cfg.IsPersistent() {
		t.Errorf("DBDriver = %q, want in-memory default", cfg.DBDriver)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Errorf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
	if cfg.TrayCapacity != 50 {
		t.Errorf("TrayCapacity = %d, want 50", cfg.TrayCapacity)
	}
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:      "Medtrack",
		ResendAPIKey: "re_secret",
		S3SecretKey:  "s3_secret",
		SentryDSN:    "https://key@sentry.example.com/1",
	}

	safe := cfg.Sanitized()
	if safe.ResendAPIKey != "" || safe.S3SecretKey != "" || safe.SentryDSN != "" {
		t.Errorf("Sanitized leaked secrets: %+v", safe)
	}
	if safe.AppName != "Medtrack" {
		t.Errorf("Sanitized AppName = %q", safe.AppName)
	}
}
