package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type catalogLoader interface {
	LoadCatalog(ctx context.Context) error
}

// CatalogRefresher reloads the kiosk catalog on a fixed interval.
type CatalogRefresher struct {
	loader   catalogLoader
	interval time.Duration

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewCatalogRefresher(loader catalogLoader, interval time.Duration) *CatalogRefresher {
	return &CatalogRefresher{
		loader:   loader,
		interval: interval,
	}
}

func (w *CatalogRefresher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("catalog refresher is already running")
	}

	if w.interval <= 0 {
		return errors.New("catalog refresh interval must be positive")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		w.Run(runCtx)
	}()

	return nil
}

func (w *CatalogRefresher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *CatalogRefresher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.isRunning
}

// Run blocks until ctx is done. Load failures are reported by the loader and
// wait for the next tick.
func (w *CatalogRefresher) Run(ctx context.Context) {
	logger(ctx).Info("catalog refresher started", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("catalog refresher stopped")
			return
		case <-ticker.C:
			_ = w.loader.LoadCatalog(ctx) //nolint:errcheck
		}
	}
}
