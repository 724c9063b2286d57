package kiosk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeFailed    = "failed"
	outcomeRejected  = "rejected"
	outcomeCommitted = "committed"
	outcomeStale     = "stale"
)

//nolint:gochecknoglobals
var (
	purchasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kiosk",
		Name:      "purchases_total",
		Help:      "Purchase attempts by outcome.",
	}, []string{"outcome"})

	balanceAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kiosk",
		Name:      "balance_added_total",
		Help:      "Sum of inserted amounts.",
	})

	catalogLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kiosk",
		Name:      "catalog_loads_total",
		Help:      "Catalog loads by outcome.",
	}, []string{"outcome"})
)
