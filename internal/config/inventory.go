package config

import "time"

type Inventory struct {
	BaseURL        string        `env:"INVENTORY_BASE_URL,required"`
	Token          string        `env:"INVENTORY_TOKEN"             json:"-"`
	Timeout        time.Duration `env:"INVENTORY_TIMEOUT"           envDefault:"10s"`
	LogFieldMaxLen int           `env:"INVENTORY_LOG_FIELD_MAX_LEN" envDefault:"4096"`
}
