package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	Inventory Inventory
	Kiosk     Kiosk
	HTTP      HTTP
	Bot       Bot
	Journal   Journal
	Postgres  Postgres
	Redis     Redis
}

type App struct {
	Name      string     `env:"APP_NAME"    envDefault:"vend-kiosk"`
	Version   string     `env:"APP_VERSION" envDefault:"dev"`
	LogFormat string     `env:"LOG_FORMAT"  envDefault:"text"`
	LogLevel  slog.Level `env:"LOG_LEVEL"   envDefault:"info"`
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, fmt.Errorf("config.validate: %w", err)
	}

	return config, nil
}

func (c Config) validate() error {
	var errs []error

	if u, err := url.Parse(c.Inventory.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("INVENTORY_BASE_URL must be an absolute URL, got %q", c.Inventory.BaseURL))
	}

	if len(c.Kiosk.Denominations) == 0 {
		errs = append(errs, errors.New("KIOSK_DENOMINATIONS must not be empty"))
	}

	for i, d := range c.Kiosk.Denominations {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("KIOSK_DENOMINATIONS: %d is not positive", d))
		}

		if slices.Contains(c.Kiosk.Denominations[:i], d) {
			errs = append(errs, fmt.Errorf("KIOSK_DENOMINATIONS: %d is listed twice", d))
		}
	}

	if c.Bot.Enabled() && c.Bot.ChatID == 0 {
		errs = append(errs, errors.New("BOT_CHAT_ID is required with BOT_TOKEN"))
	}

	if c.Journal.Enabled {
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("PG_DSN is required with JOURNAL_ENABLED"))
		}

		if c.Redis.Address == "" {
			errs = append(errs, errors.New("REDIS_ADDRESS is required with JOURNAL_ENABLED"))
		}
	}

	if c.App.LogFormat != "text" && c.App.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.App.LogFormat))
	}

	return errors.Join(errs...)
}
