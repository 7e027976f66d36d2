package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = "8080"
	DefaultJWTExpiryMin = 10080
	DefaultOTPLength    = 6
	DefaultOTPExpiryMin = 15
	DefaultSMTPPort     = 587
)

type Config struct {
	Env          string
	Port         string
	DBURL        string
	JWTSecret    string
	JWTExpiryMin int
	OTPLength    int
	OTPExpiryMin int
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	EmailFrom    string
}

// Load reads config/.env.dev or config/.env.prod for the current ENV, with
// real environment variables taking precedence over file values.
func Load() *Config {
	env := getEnv("ENV", "development")
	loadEnvFile(env)

	return &Config{
		Env:          env,
		Port:         getEnv("PORT", DefaultPort),
		DBURL:        mustGetEnv("DB_URL"),
		JWTSecret:    mustGetEnv("JWT_SECRET"),
		JWTExpiryMin: getEnvAsInt("JWT_EXPIRY_MIN", DefaultJWTExpiryMin),
		OTPLength:    getEnvAsInt("OTP_LENGTH", DefaultOTPLength),
		OTPExpiryMin: getEnvAsInt("OTP_EXPIRY_MIN", DefaultOTPExpiryMin),
		SMTPHost:     mustGetEnv("SMTP_HOST"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", DefaultSMTPPort),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		EmailFrom:    mustGetEnv("EMAIL_FROM"),
	}
}

// loadEnvFile merges the dotenv file for the environment. godotenv never
// overrides variables already set, which gives env vars precedence. A
// missing file is fine; everything can come from the environment.
func loadEnvFile(env string) {
	file := "config/.env.dev"
	if env == "production" {
		file = "config/.env.prod"
	}
	if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load %s: %v", file, err)
	}
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return val
}
