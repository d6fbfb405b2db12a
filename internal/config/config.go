package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "secret"

type Config struct {
	Port        string        `envconfig:"PORT" default:"8080"`
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"secret"`
	JWTExpiry   time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	MongoURI    string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	DBName      string        `envconfig:"DB_NAME" default:"vfx-dashboard"`
	SkipAuth    bool          `envconfig:"SKIP_AUTH" default:"false"`
	Environment string        `envconfig:"ENVIRONMENT" default:"development"`
	AppId       string        `envconfig:"APP_ID" default:"vfx-dashboard"`

	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Cron expression for the nightly analytics snapshot. Empty disables it.
	SnapshotSchedule string `envconfig:"SNAPSHOT_SCHEDULE" default:"0 2 * * *"`

	// A user counts as active when their last login falls inside this window.
	ActiveWindow time.Duration `envconfig:"ACTIVE_WINDOW" default:"720h"`

	AuthRatePerMinute int `envconfig:"AUTH_RATE_PER_MINUTE" default:"10"`
}

// LoadConfig loads configuration from the environment, reading a .env file first if present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return Parse()
}

// Parse decodes the current process environment into a Config.
func Parse() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	if c.AuthRatePerMinute <= 0 {
		return errors.New("AUTH_RATE_PER_MINUTE must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
