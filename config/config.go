package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBType            string
	PostgresURL       string
	MongoURL          string
	MongoDB           string
	Port              string
	JWTSecret         string
	JWTTTL            time.Duration
	LogLevel          string
	MigrationsEnabled bool

	StorageType string
	UploadDir   string
	R2          R2Config

	ChromePath string
}

// R2Config holds the Cloudflare R2 (S3 API) credentials used for post attachments.
type R2Config struct {
	AccountID       string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	cfg := &Config{
		DBType:            strings.ToLower(getEnv("DB_TYPE", "postgres")),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		MongoURL:          os.Getenv("MONGO_URL"),
		MongoDB:           getEnv("MONGO_DB", "shipping_erp"),
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MigrationsEnabled: getEnvBool("MIGRATIONS_ENABLED", true),
		StorageType:       strings.ToLower(getEnv("STORAGE_TYPE", "local")),
		UploadDir:         getEnv("UPLOAD_DIR", "public"),
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			Bucket:          os.Getenv("R2_BUCKET"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			PublicURL:       os.Getenv("R2_PUBLIC_URL"),
		},
		ChromePath: os.Getenv("CHROME_PATH"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
