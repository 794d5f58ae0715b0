package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from .env when present
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using existing environment: %v", err)
	}
}

// GetEnv returns the value of an environment variable
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault returns the value of an environment variable or a fallback
func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
