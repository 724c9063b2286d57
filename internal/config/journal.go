package config

import "time"

type Journal struct {
	Enabled        bool          `env:"JOURNAL_ENABLED"         envDefault:"false"`
	Queue          string        `env:"JOURNAL_QUEUE"           envDefault:"receipts"`
	MaxRetry       int           `env:"JOURNAL_MAX_RETRY"       envDefault:"10"`
	Retention      time.Duration `env:"JOURNAL_RETENTION"       envDefault:"24h"`
	Concurrency    int           `env:"JOURNAL_CONCURRENCY"     envDefault:"2"`
	TallyRetention time.Duration `env:"JOURNAL_TALLY_RETENTION" envDefault:"2160h"`
}
