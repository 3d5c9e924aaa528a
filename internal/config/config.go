package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort        string
	DatabasePath    string // single SQLite file
	JWTSecret       string
	CORSOrigins     string
	PreferencesPath string // display preferences JSON
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/despensa.db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		PreferencesPath: getEnv("PREFERENCES_PATH", "data/preferences.json"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabasePath == "data/despensa.db" {
		log.Println("[WARN] DATABASE_PATH not set, using default data/despensa.db")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
