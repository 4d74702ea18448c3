package config

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Addr string

	DBUsername string
	DBPassword string
	DBHost     string
	DBPort     string
	DBDatabase string
	DBSchema   string

	PayPalBaseURL  string
	PayPalClientID string
	PayPalSecret   string

	JWTSecret        string
	AdminSetupSecret string

	DiscordWebhookURL string

	CORSOrigins []string
}

func Load() Config {
	return Config{
		Addr: getenv("STOREFRONT_ADDR", ":8080"),

		DBUsername: os.Getenv("STOREFRONT_DB_USERNAME"),
		DBPassword: os.Getenv("STOREFRONT_DB_PASSWORD"),
		DBHost:     getenv("STOREFRONT_DB_HOST", "localhost"),
		DBPort:     getenv("STOREFRONT_DB_PORT", "5432"),
		DBDatabase: getenv("STOREFRONT_DB_DATABASE", "storefront"),
		DBSchema:   getenv("STOREFRONT_DB_SCHEMA", "public"),

		PayPalBaseURL:  getenv("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
		PayPalClientID: os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalSecret:   os.Getenv("PAYPAL_SECRET"),

		JWTSecret:        os.Getenv("STOREFRONT_JWT_SECRET"),
		AdminSetupSecret: os.Getenv("STOREFRONT_ADMIN_SETUP_SECRET"),

		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),

		CORSOrigins: splitList(getenv("STOREFRONT_CORS_ORIGINS", "*")),
	}
}

// DSN builds the Postgres connection string the same way across server,
// simulator and tests.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		c.DBUsername, c.DBPassword, c.DBHost, c.DBPort, c.DBDatabase, c.DBSchema,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
