package config

import "time"

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS"     envDefault:":8080"`
	ProbeAddress    string        `env:"HTTP_PROBE_ADDRESS"      envDefault:":8081"`
	MetricsAddress  string        `env:"HTTP_METRICS_ADDRESS"    envDefault:":9090"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"   envDefault:"10s"`
	LogFieldMaxLen  int           `env:"HTTP_LOG_FIELD_MAX_LEN"  envDefault:"4096"`
}
