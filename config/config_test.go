package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("WAITLIST_LIMIT", "")
	t.Setenv("GEMINI_MODEL", "")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.WaitlistLimit != 50 {
		t.Errorf("expected default waitlist limit 50, got %d", cfg.WaitlistLimit)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("expected default model, got %s", cfg.GeminiModel)
	}
	if cfg.ReminderSchedule != "0 20 * * *" {
		t.Errorf("expected default schedule, got %s", cfg.ReminderSchedule)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WAITLIST_LIMIT", "25")
	t.Setenv("DATABASE_URL", "postgres://localhost/ahorify")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.WaitlistLimit != 25 {
		t.Errorf("expected waitlist limit 25, got %d", cfg.WaitlistLimit)
	}
	if cfg.DatabaseURL != "postgres://localhost/ahorify" {
		t.Errorf("unexpected database url %s", cfg.DatabaseURL)
	}
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("WAITLIST_LIMIT", "not-a-number")

	if cfg := Load(); cfg.WaitlistLimit != 50 {
		t.Errorf("expected fallback to default 50, got %d", cfg.WaitlistLimit)
	}
}
