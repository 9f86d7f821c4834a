package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	DatabaseURL string
	Port        string
	Environment string

	// Feature 2: scarcity
	WaitlistLimit int
	MaxBetaUsers  int

	// Aury / Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Google auth
	GoogleClientID string

	// OneSignal push
	OneSignalAppID      string
	OneSignalRESTAPIKey string

	// Daily reminders (optional; worker is skipped when RedisURL is empty)
	RedisURL         string
	ReminderSchedule string
	ReminderTimezone string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnvWithDefault("PORT", "3000"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),

		WaitlistLimit: getEnvInt("WAITLIST_LIMIT", 50),
		MaxBetaUsers:  getEnvInt("MAX_BETA_USERS", 10000),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		OneSignalAppID:      os.Getenv("ONESIGNAL_APP_ID"),
		OneSignalRESTAPIKey: os.Getenv("ONESIGNAL_REST_API_KEY"),

		RedisURL:         os.Getenv("REDIS_URL"),
		ReminderSchedule: getEnvWithDefault("REMINDER_SCHEDULE", "0 20 * * *"),
		ReminderTimezone: getEnvWithDefault("REMINDER_TIMEZONE", "Europe/Madrid"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
