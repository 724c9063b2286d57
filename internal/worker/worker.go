// Package worker holds background jobs: the receipt recorder consumed from
// the task queue and the periodic catalog refresher.
package worker

import "vend_kiosk/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
