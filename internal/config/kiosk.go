package config

import "time"

type Kiosk struct {
	Denominations           []int64       `env:"KIOSK_DENOMINATIONS"              envDefault:"2000,5000,10000,20000,50000" envSeparator:","`
	ClearSelectionOnSuccess bool          `env:"KIOSK_CLEAR_SELECTION_ON_SUCCESS" envDefault:"false"`
	CatalogRefreshInterval  time.Duration `env:"KIOSK_CATALOG_REFRESH_INTERVAL"   envDefault:"0s"`
}
