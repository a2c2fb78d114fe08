package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port               string
	Environment        string
	LogLevel           string
	AllowedOrigins     []string
	FrontendURL        string
	JWTSecret          string
	SessionTokenTTL    time.Duration
	BotThinkDelay      time.Duration
	TurnTick           time.Duration
	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration
	DefaultDifficulty  string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("APP_ENV", "production")
	logLevel := GetEnv("LOG_LEVEL", "info")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	sessionTokenTTL := GetEnvAsDuration("SESSION_TOKEN_TTL_MINUTES", 120, time.Minute)

	// Game pacing
	botThinkDelay := GetEnvAsDuration("BOT_THINK_DELAY_MS", 500, time.Millisecond)
	turnTick := GetEnvAsDuration("TURN_TICK_MS", 1000, time.Millisecond)
	defaultDifficulty := GetEnv("DEFAULT_DIFFICULTY", "medium")

	// Housekeeping
	sessionIdleTimeout := GetEnvAsDuration("SESSION_IDLE_TIMEOUT_MINUTES", 30, time.Minute)
	cleanupInterval := GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 5, time.Minute)

	AppConfig = &Config{
		Port:               port,
		Environment:        environment,
		LogLevel:           logLevel,
		AllowedOrigins:     allowedOrigins,
		FrontendURL:        frontendURL,
		JWTSecret:          jwtSecret,
		SessionTokenTTL:    sessionTokenTTL,
		BotThinkDelay:      botThinkDelay,
		TurnTick:           turnTick,
		SessionIdleTimeout: sessionIdleTimeout,
		CleanupInterval:    cleanupInterval,
		DefaultDifficulty:  defaultDifficulty,
	}

	return AppConfig
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).
			Msg("[CONFIG] Invalid integer value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit. Non-positive values fall back to the default.
func GetEnvAsDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	value := GetEnvAsInt(key, defaultValue)
	if value <= 0 {
		value = defaultValue
	}
	return time.Duration(value) * unit
}
