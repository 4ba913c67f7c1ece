package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Blob       BlobConfig
	OAuth      OAuthConfig
	Transcribe TranscribeConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	LocalMode          bool
	JWTSecret          string
}

type BlobConfig struct {
	Backend        string // "minio" or "badger"
	Endpoint       string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	BadgerPath     string
	StateContainer string
	ImageContainer string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	RedirectURI        string
	AllowedEmails      []string
}

type TranscribeConfig struct {
	GeminiAPIKey string
	Model        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			LocalMode:          getEnvAsBool("LOCAL_MODE", false),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Blob: BlobConfig{
			Backend:        getEnv("BLOB_BACKEND", "minio"),
			Endpoint:       getEnv("BLOB_CONN_STR", "localhost:9000"),
			AccessKey:      getEnv("BLOB_ACCESS_KEY", ""),
			SecretKey:      getEnv("BLOB_SECRET_KEY", ""),
			UseSSL:         getEnvAsBool("BLOB_USE_SSL", true),
			BadgerPath:     getEnv("BADGER_PATH", "data/blobs"),
			StateContainer: getEnv("STATE_CONTAINER", "session-state"),
			ImageContainer: getEnv("IMAGE_CONTAINER", "user-images"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURI:        getEnv("OAUTH_REDIRECT_URI", ""),
			AllowedEmails:      getEnvAsList("ALLOWED_EMAILS"),
		},
		Transcribe: TranscribeConfig{
			GeminiAPIKey: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Model:        getEnv("TRANSCRIBE_MODEL", "gemini-2.0-flash"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	return strings.EqualFold(strValue, "true")
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
