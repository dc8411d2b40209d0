/*
scheduler.go - Periodic reference-table reload

PURPOSE:
  Official data (RIPTE, IPC, Tasa Activa, JUS agreements) is published
  monthly. The scheduler re-reads the configured store on an interval so a
  long-running server picks up replaced CSV files or a fresh SQLite import
  without a restart.

DESIGN:
  - Runs a background goroutine with a configurable interval
  - Reloads immediately on start
  - A failed reload is logged; the previous tables keep serving

CONFIGURATION:
  - data.reloadInterval: How often to reload (0 disables)

USAGE:
  scheduler := NewReloadScheduler(handler, cfg.Data.ReloadInterval)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: ReloadTables endpoint (manual reload)
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReloadScheduler reloads the handler's tables periodically.
type ReloadScheduler struct {
	Handler  *Handler
	Interval time.Duration
	Timeout  time.Duration // per reload

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewReloadScheduler creates a new scheduler. A non-positive interval
// creates a disabled scheduler.
func NewReloadScheduler(handler *Handler, interval time.Duration) *ReloadScheduler {
	return &ReloadScheduler{
		Handler:  handler,
		Interval: interval,
		Timeout:  time.Minute,
		stop:     make(chan struct{}),
	}
}

// Enabled reports whether Start will launch the loop.
func (rs *ReloadScheduler) Enabled() bool {
	return rs.Interval > 0
}

// Start begins the scheduler.
func (rs *ReloadScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled() {
		rs.Handler.Logger.Info("reload scheduler disabled")
		return
	}
	if rs.ticker != nil {
		return
	}

	rs.ticker = time.NewTicker(rs.Interval)
	rs.wg.Add(1)

	go rs.run()

	rs.Handler.Logger.Info("reload scheduler started", zap.Duration("interval", rs.Interval))
}

// Stop stops the scheduler and waits for an in-flight reload.
func (rs *ReloadScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		rs.stop = make(chan struct{})
		rs.Handler.Logger.Info("reload scheduler stopped")
	}
}

func (rs *ReloadScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.RunNow()

	for {
		select {
		case <-rs.ticker.C:
			rs.RunNow()
		case <-rs.stop:
			return
		}
	}
}

// RunNow triggers an immediate reload.
func (rs *ReloadScheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), rs.Timeout)
	defer cancel()

	if err := rs.Handler.Reload(ctx); err != nil {
		rs.Handler.Logger.Warn("scheduled reload failed, keeping previous tables", zap.Error(err))
	}
}
