package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Flusher is anything whose state can be durably recorded on a schedule.
type Flusher interface {
	Flush() error
}

// AutosaveWorker periodically flushes the editor session to the snapshot
// store, unconditionally and regardless of whether anything changed. It is
// owned by the session lifecycle: started with it, stopped on teardown, so
// no timer outlives a discarded editor.
type AutosaveWorker struct {
	session  Flusher
	logger   *zap.Logger
	interval time.Duration

	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewAutosaveWorker creates a new autosave worker
func NewAutosaveWorker(session Flusher, interval time.Duration, logger *zap.Logger) *AutosaveWorker {
	return &AutosaveWorker{
		session:  session,
		logger:   logger,
		interval: interval,
	}
}

// Start starts the autosave loop
func (w *AutosaveWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("autosave worker is already running")
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.isRunning = true

	w.logger.Info("AutosaveWorker started", zap.Duration("interval", w.interval))

	go w.flushLoop()

	return nil
}

// Stop stops the autosave loop
func (w *AutosaveWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return
	}

	w.isRunning = false
	if w.cancel != nil {
		w.cancel()
	}

	w.logger.Info("AutosaveWorker stopped")
}

// Name returns the worker name for identification
func (w *AutosaveWorker) Name() string {
	return "AutosaveWorker"
}

// flushLoop runs the periodic flush
func (w *AutosaveWorker) flushLoop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Debug("Autosave loop context cancelled")
			return

		case <-ticker.C:
			if err := w.session.Flush(); err != nil {
				w.logger.Error("Autosave flush failed", zap.Error(err))
			}
		}
	}
}
