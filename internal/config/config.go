package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session tokens
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Credential lifecycle token windows
	VerifyTokenExpiry time.Duration
	ResetTokenExpiry  time.Duration

	// Password hashing
	BcryptCost int

	// Login policy: when true, login requires a verified email.
	RequireVerifiedEmail bool

	// Outbound email (Brevo)
	BrevoAPIKey   string
	MailFromEmail string
	MailFromName  string
	MailTimeout   time.Duration
	AppBaseURL    string

	// Admin
	AdminEmails string
	AdminToken  string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "identity_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),

		VerifyTokenExpiry: parseDuration(getEnv("VERIFY_TOKEN_EXPIRY", "24h"), 24*time.Hour),
		ResetTokenExpiry:  parseDuration(getEnv("RESET_TOKEN_EXPIRY", "1h"), time.Hour),

		BcryptCost: parseInt(getEnv("BCRYPT_COST", "10"), 10),

		RequireVerifiedEmail: getEnv("REQUIRE_VERIFIED_EMAIL", "false") == "true",

		BrevoAPIKey:   getEnv("BREVO_API_KEY", ""),
		MailFromEmail: getEnv("MAIL_FROM_EMAIL", ""),
		MailFromName:  getEnv("MAIL_FROM_NAME", "Identity Backend"),
		MailTimeout:   parseDuration(getEnv("MAIL_TIMEOUT", "10s"), 10*time.Second),
		AppBaseURL:    getEnv("APP_BASE_URL", "http://localhost:3000"),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
