package config

import (
	"os"
	"strconv"
)

// Storage backend selectors for STORAGE_BACKEND.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// DataConfig holds settings for the JSON document backing the catalog.
type DataConfig struct {
	Path string
}

// UploadConfig holds settings for local binary storage.
type UploadConfig struct {
	Dir        string
	PublicBase string
}

// MinIOConfig holds object storage settings for the optional MinIO backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string
	BodyLimitMB    int
	StorageBackend string
	Data           DataConfig
	Uploads        UploadConfig
	MinIO          MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:4000"),
		Port:           getEnv("PORT", "4000"), // default only for non-sensitive value
		BodyLimitMB:    getEnvInt("BODY_LIMIT_MB", 25),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendLocal),
		Data: DataConfig{
			Path: getEnv("DATA_FILE", "data.json"),
		},
		Uploads: UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "pdfs"),
			PublicBase: getEnv("UPLOAD_PUBLIC_BASE", "/pdfs"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
