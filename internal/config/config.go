package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
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

// S3Config holds object storage settings for any S3-compatible backend (MinIO, AWS S3, ...).
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PresignExpirySec is the default lifetime of presigned GET/PUT URLs.
	PresignExpirySec int
}

// JWTConfig holds bearer token signing settings.
type JWTConfig struct {
	Secret       string
	ExpiresInSec int
}

// UploadConfig bounds what the upload endpoints accept.
type UploadConfig struct {
	// MaxFileSize is the largest accepted file in bytes. A file of exactly
	// this size is allowed; one byte more is rejected.
	MaxFileSize int64
	// AllowedMimeTypes is the MIME allow-list for uploads.
	AllowedMimeTypes []string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	S3       S3Config
	JWT      JWTConfig
	Upload   UploadConfig
}

// defaultAllowedMimeTypes mirrors the file types the frontend offers for upload.
var defaultAllowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
	"text/plain",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		S3: S3Config{
			Endpoint:         getEnv("S3_ENDPOINT", ""),
			Region:           getEnv("S3_REGION", "us-east-1"),
			AccessKey:        getEnv("S3_ACCESS_KEY", ""),
			SecretKey:        getEnv("S3_SECRET_KEY", ""),
			Bucket:           getEnv("S3_BUCKET", ""),
			UseSSL:           getEnvBool("S3_USE_SSL", false),
			PresignExpirySec: getEnvInt("PRESIGN_EXPIRY_SEC", 60),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", ""),
			ExpiresInSec: getEnvInt("JWT_EXPIRES_IN_SEC", 3600),
		},
		Upload: UploadConfig{
			MaxFileSize:      getEnvInt64("MAX_FILE_SIZE_BYTES", 5*1024*1024),
			AllowedMimeTypes: getEnvList("ALLOWED_MIME_TYPES", defaultAllowedMimeTypes),
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

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList parses a comma-separated env value, trimming whitespace around items.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
