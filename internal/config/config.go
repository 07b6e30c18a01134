package config

import (
	"os"
	"strconv"
)

// Supported storage backends.
const (
	BackendJSON     = "json"
	BackendYAML     = "yaml"
	BackendFile     = "file"
	BackendS3       = "s3"
	BackendPostgres = "postgres"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// MaxOpenConns = 1 keeps a single live connection for the process.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageConfig selects where client records are persisted.
type StorageConfig struct {
	// Backend is one of json, yaml, file (format from FilePath extension), s3 or postgres.
	Backend string
	// FilePath is used by the file backends.
	FilePath string
	// ObjectKey is used by the s3 backend; its extension selects the format.
	ObjectKey string
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Env is "prod" for JSON output or "dev" for console output.
	Env   string
	Level string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Log      LogConfig
	Storage  StorageConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Log: LogConfig{
			Env:   getEnv("LOG_ENV", "prod"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", BackendJSON),
			FilePath:  getEnv("STORAGE_FILE_PATH", "clients.json"),
			ObjectKey: getEnv("STORAGE_OBJECT_KEY", "clients.json"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
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
