package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// DeepSeek (chat completions, prompt generation)
	DeepSeekAPIKey  string
	DeepSeekBaseURL string

	// Gemini proxy (OpenAI-compatible endpoint for vision + action rewriting)
	GeminiAPIKey  string
	GeminiBaseURL string

	// Google Imagen (native SDK, image generation)
	GoogleImageAPIKey string

	// LLM call budgets in seconds
	LLMTimeoutSeconds      int
	ImageGenTimeoutSeconds int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		DeepSeekAPIKey:  mustGetEnv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: getEnvOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),

		GeminiAPIKey:  mustGetEnv("GEMINI_API_KEY"),
		GeminiBaseURL: mustGetEnv("GEMINI_BASE_URL"),

		GoogleImageAPIKey: getEnvOrDefault("GOOGLE_IMAGE_API_KEY", ""),

		LLMTimeoutSeconds:      getEnvAsIntOrDefault("LLM_TIMEOUT_SECONDS", 120),
		ImageGenTimeoutSeconds: getEnvAsIntOrDefault("IMAGE_GEN_TIMEOUT_SECONDS", 60),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
