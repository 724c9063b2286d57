// Package connectors lazily opens shared clients for external stores.
package connectors

import "vend_kiosk/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
