package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnv              = "development"
	defaultDBPath           = "./dev.db"
	defaultPort             = "8080"
	defaultMaxLoginAttempts = 3
	defaultWebhookTimeout   = 15 * time.Second
	defaultPricingTable     = "standard"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env              string
	Port             string
	DBPath           string
	AccessPassword   string
	SessionSecret    string
	MaxLoginAttempts int
	WebhookURL       string
	WebhookTimeout   time.Duration
	PricingTable     string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: a missing .env is fine, real deployments inject the environment.
	_ = godotenv.Load()

	cfg := Config{
		Env:              os.Getenv("APP_ENV"),
		Port:             os.Getenv("PORT"),
		DBPath:           os.Getenv("DB_PATH"),
		AccessPassword:   os.Getenv("ACCESS_PASSWORD"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		MaxLoginAttempts: defaultMaxLoginAttempts,
		WebhookURL:       os.Getenv("ZAPIER_WEBHOOK_URL"),
		WebhookTimeout:   defaultWebhookTimeout,
		PricingTable:     os.Getenv("PRICING_TABLE"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.PricingTable == "" {
		cfg.PricingTable = defaultPricingTable
	}

	if raw := os.Getenv("MAX_LOGIN_ATTEMPTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Printf("warning: MAX_LOGIN_ATTEMPTS=%q is invalid, using %d", raw, defaultMaxLoginAttempts)
		} else {
			cfg.MaxLoginAttempts = n
		}
	}
	if raw := os.Getenv("WEBHOOK_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			log.Printf("warning: WEBHOOK_TIMEOUT=%q is invalid, using %s", raw, defaultWebhookTimeout)
		} else {
			cfg.WebhookTimeout = d
		}
	}

	if cfg.AccessPassword == "" {
		log.Print("warning: ACCESS_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}
	if cfg.WebhookURL == "" {
		log.Print("warning: ZAPIER_WEBHOOK_URL is not set")
	}

	return cfg
}

// IsDev reports whether migrations and seeding run at start-up.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv || c.Env == "dev"
}
