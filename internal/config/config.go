package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"2"`

	// JWTSecret signs identity tokens. It is read once at startup.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	GRPCPort string `envconfig:"PORT" default:"50051"`
	WebPort  string `envconfig:"WEB_PORT" default:"8080"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8081"`

	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	ClinicTimezone string `envconfig:"CLINIC_TIMEZONE" default:"UTC"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	// Events are disabled when RabbitURL is empty.
	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"clinic.appointments"`

	// Tracing is disabled when OTLPEndpoint is empty.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads an optional .env file, then decodes the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv decodes the process environment without touching .env.
func FromEnv() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) IsDev() bool { return c.Env == "development" }

// Location is the clinic time zone used for calendar-day bounds.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return nil, fmt.Errorf("CLINIC_TIMEZONE %q: %w", c.ClinicTimezone, err)
	}
	return loc, nil
}
