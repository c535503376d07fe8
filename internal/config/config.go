package config

import "os"

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	ServerPort     string
	AdvanceDelay   string
	SessionIdleTTL string
}

func Load() *Config {
	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "gameshow"),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AdvanceDelay:   getEnv("ADVANCE_DELAY", "3"),
		SessionIdleTTL: getEnv("SESSION_IDLE_TTL", "10"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
