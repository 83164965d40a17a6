package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	OllamaURL        string
	OllamaEmbedModel string

	TaxonomyPath string

	// MinExtractedChars gates the extraction fallback chain; resume text
	// under MinMatchableChars is rejected outright.
	MinExtractedChars int
	MinMatchableChars int

	SemanticWeight float64
	KeywordWeight  float64

	OCREnabled  bool
	OCRLanguage string
	RasterDPI   float64

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int

	EmbedRetryMaxAttempts int
	EmbedBreakerEnabled   bool
}

func Load() Config {
	// Local development convenience; absent .env files are not an error.
	_ = godotenv.Load()

	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OllamaURL:        mustEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaEmbedModel: mustEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),

		TaxonomyPath: mustEnv("TAXONOMY_PATH", ""),

		MinExtractedChars: mustEnvInt("MIN_EXTRACTED_CHARS", 100),
		MinMatchableChars: mustEnvInt("MIN_MATCHABLE_CHARS", 50),

		SemanticWeight: mustEnvFloat("SEMANTIC_WEIGHT", 0.7),
		KeywordWeight:  mustEnvFloat("KEYWORD_WEIGHT", 0.3),

		OCREnabled:  mustEnvBool("OCR_ENABLED", true),
		OCRLanguage: mustEnv("OCR_LANGUAGE", "eng"),
		RasterDPI:   mustEnvFloat("RASTER_DPI", 150),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 10),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 20),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 8),

		EmbedRetryMaxAttempts: mustEnvInt("EMBED_RETRY_MAX_ATTEMPTS", 3),
		EmbedBreakerEnabled:   mustEnvBool("EMBED_BREAKER_ENABLED", true),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
