package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Keys       APIKeys
	Extraction ExtractionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadLimitMB      int
	SessionTTLMinutes  int
}

type APIKeys struct {
	GoogleGemini string
}

type ExtractionConfig struct {
	Model          string
	TimeoutSeconds int
	MaxRetries     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			UploadLimitMB:      getEnvAsInt("UPLOAD_LIMIT_MB", 20),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Extraction: ExtractionConfig{
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			TimeoutSeconds: getEnvAsInt("EXTRACTION_TIMEOUT_SECONDS", 60),
			MaxRetries:     getEnvAsInt("EXTRACTION_MAX_RETRIES", 3),
		},
	}

	// A missing credential is a startup-time configuration error, not a
	// runtime extraction error.
	if cfg.Keys.GoogleGemini == "" {
		log.Fatal("GOOGLE_GEMINI_API_KEY is not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
