package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the application reads from the environment.
// It is built ONCE in main() and passed by reference into the pieces that
// need it (token issuer, mailer). Nothing else touches os.Getenv after
// startup.
type Config struct {
	Server ServerConfig
	DB     DatabaseConfig
	JWT    JWTConfig
	Mail   MailConfig
}

type ServerConfig struct {
	Port    string
	Env     string // "development" | "production"
	BaseURL string // public base URL, used to build upload links
}

type DatabaseConfig struct {
	DSN string
}

type JWTConfig struct {
	Secret          string
	ExpiresIn       time.Duration // lifetime of the signed token itself
	CookieExpiresIn int           // lifetime of the cookie, in DAYS
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Load reads the full configuration from the environment.
// A missing JWT secret is a fatal configuration error: without it we cannot
// sign a single token, so we refuse to start rather than fail per-request.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, errors.New("config: JWT_SECRET_KEY is not set")
	}

	expiresIn, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, errors.New("config: JWT_EXPIRES_IN is not a valid duration")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			Env:     getEnv("APP_ENV", "development"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		DB: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		JWT: JWTConfig{
			Secret:          secret,
			ExpiresIn:       expiresIn,
			CookieExpiresIn: getEnvAsInt("JWT_COOKIE_EXPIRES_IN", 7),
		},
		Mail: MailConfig{
			Host:     getEnv("MAIL_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("MAIL_PORT", 587),
			Username: getEnv("USER_EMAIL", ""),
			Password: getEnv("USER_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", "Azir E-commerce"),
		},
	}

	return cfg, nil
}

// IsDevelopment reports whether we are running outside production.
// The auth cookie is only marked Secure when this returns false.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
