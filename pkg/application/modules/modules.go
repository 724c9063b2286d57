// Package modules runs long-lived application components inside an errgroup.
package modules

import "vend_kiosk/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
