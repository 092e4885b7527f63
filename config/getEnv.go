package config

import "os"

// GetEnv reads an environment variable, returning "" when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable with a fallback value.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetGeminiAPIKey returns the Gemini API key, failing hard when missing.
func GetGeminiAPIKey() string {
	key := GetEnv("GEMINI_API_KEY")
	if key == "" {
		Logger.Fatal("GEMINI_API_KEY is required in .env")
	}
	return key
}
