package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// NotifyWorkers is the number of real-time delivery workers.
	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Reminder ReminderConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ReminderConfig drives the due-date reminder sweep.
type ReminderConfig struct {
	// DailyHour is the local hour of the daily sweep; -1 disables it.
	DailyHour int `env:"REMINDER_DAILY_HOUR, default=9"`
	// Interval is the intraday re-check cadence; 0 disables it.
	Interval time.Duration `env:"REMINDER_INTERVAL,   default=2h"`
	// Horizon is how far ahead a card's due date must fall to be reminded.
	Horizon   time.Duration `env:"REMINDER_HORIZON,    default=24h"`
	Timezone  string        `env:"REMINDER_TIMEZONE,   default=UTC"`
	LedgerTTL time.Duration `env:"REMINDER_LEDGER_TTL, default=48h"`
}

// Location resolves Timezone. Validate guarantees it loads.
func (r ReminderConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Reminder.DailyHour < -1 || c.Reminder.DailyHour > 23 {
		errs = append(errs, fmt.Errorf("REMINDER_DAILY_HOUR must be between -1 and 23, got %d", c.Reminder.DailyHour))
	}
	if c.Reminder.Interval < 0 {
		errs = append(errs, errors.New("REMINDER_INTERVAL must not be negative"))
	}
	if c.Reminder.Horizon <= 0 {
		errs = append(errs, errors.New("REMINDER_HORIZON must be positive"))
	}
	if _, err := time.LoadLocation(c.Reminder.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("REMINDER_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads and validates configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
