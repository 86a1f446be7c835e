package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                string
	LogLevel           string
	MongoURI           string
	MongoDB            string
	ServerAddr         string
	CORSOrigins        []string
	JWTSecret          string
	TokenTTL           time.Duration
	BrevoAPIKey        string
	BrevoSenderEmail   string
	BrevoSenderName    string
	BrevoSandbox       bool
	RedisURL           string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	UploadsDir         string
	UploadMaxWidth     int
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3AccessKeyID      string
	S3SecretAccessKey  string
	S3PublicURL        string
	RateLimitAuth      int
	RateLimitContact   int
	RateLimitWindowSec int
	Timezone           *time.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func Load() (*Config, error) {
	// Missing .env is fine; real environment variables always win.
	_ = godotenv.Load(".env")

	loc, err := time.LoadLocation(getEnv("TZ", "UTC"))
	if err != nil {
		return nil, err
	}

	mongoURI := getEnv("MONGO_URL", getEnv("MONGO_URI", "mongodb://localhost:27017/mikombo_park"))
	mongoDB := getEnv("DB_NAME", "")
	if mongoDB == "" {
		mongoDB = mongoDBFromURI(mongoURI)
	}
	if mongoDB == "" {
		mongoDB = "mikombo_park"
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MongoURI:           mongoURI,
		MongoDB:            mongoDB,
		ServerAddr:         getEnv("SERVER_ADDR", ":8001"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		BrevoAPIKey:        getEnv("BREVO_API_KEY", ""),
		BrevoSenderEmail:   getEnv("SENDER_EMAIL", "noreply@mikombopark.com"),
		BrevoSenderName:    getEnv("SENDER_NAME", "Mikombo Park"),
		BrevoSandbox:       getEnv("BREVO_SANDBOX", "false") == "true",
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		UploadsDir:         getEnv("UPLOADS_DIR", "uploads"),
		UploadMaxWidth:     getEnvInt("UPLOAD_MAX_WIDTH", 1600),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicURL:        getEnv("S3_PUBLIC_URL", ""),
		RateLimitAuth:      getEnvInt("RATE_LIMIT_AUTH", 20),
		RateLimitContact:   getEnvInt("RATE_LIMIT_CONTACT", 5),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
		Timezone:           loc,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
