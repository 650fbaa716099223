package config

import (
	"os"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	EditorCode    string
	MigrationsDir string
	CORSOrigin    string
	// Redis - portfolio read cache disabled when not configured
	RedisURL string
	// MinIO - image uploads disabled when not configured
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":5001"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		EditorCode:     os.Getenv("EDITOR_CODE"),
		MigrationsDir:  getenv("PORTFOLIO_MIGRATIONS_DIR", "./db/migrations"),
		CORSOrigin:     getenv("PORTFOLIO_CORS_ORIGIN", "*"),
		RedisURL:       os.Getenv("REDIS_URL"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET", "portfolio-uploads"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		MinioPublicURL: os.Getenv("MINIO_PUBLIC_URL"),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
