package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	JWTSecret       string
	JWTExpires      time.Duration
	BcryptCost      int
	OpenAIAPIKey    string
	LLMModel        string
	LLMTimeout      time.Duration
	UploadDir       string
	OCRLanguage     string
	Env             string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "3000"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		DatabaseURL:     dbURL,
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTExpires:      getEnvDuration("JWT_EXPIRES", 7*24*time.Hour),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		LLMModel:        getEnv("LLM_MODEL", "gpt-4"),
		LLMTimeout:      getEnvDuration("LLM_TIMEOUT", 120*time.Second),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		OCRLanguage:     getEnv("OCR_LANGUAGE", "por"),
		Env:             env,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config %s invalid duration: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
