// Package watch provides the daemon mode that re-runs synchronization
// whenever either document changes on disk.
//
// The watcher:
// 1. Performs an initial sync on startup
// 2. Watches the parent directories of both files
// 3. Debounces change bursts (editors often write several events)
// 4. Suppresses the events caused by its own writes
// 5. Handles graceful shutdown
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/orgtools/orgsync/internal/engine"
)

// Config holds configuration for the watcher.
type Config struct {
	// Debounce is how long to wait after the last file event before
	// re-running the sync. This batches rapid editor writes together.
	Debounce time.Duration

	// Logger for watcher activity.
	Logger *log.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Debounce: 500 * time.Millisecond,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
	}
}

// Watcher re-runs the sync engine when either document changes.
type Watcher struct {
	engineCfg engine.Config
	config    *Config
	targets   map[string]bool // cleaned paths of the two documents

	watcher *fsnotify.Watcher

	mu            sync.Mutex
	pendingAt     time.Time // zero when nothing is queued
	suppressUntil time.Time // ignore events caused by our own writes

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher for the two documents named in engineCfg.
// Use Start to begin watching.
func New(engineCfg engine.Config, config *Config) (*Watcher, error) {
	if engineCfg.BeOrgPath == "" || engineCfg.JournellyPath == "" {
		return nil, fmt.Errorf("both file paths are required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		engineCfg: engineCfg,
		config:    config,
		targets: map[string]bool{
			filepath.Clean(engineCfg.BeOrgPath):     true,
			filepath.Clean(engineCfg.JournellyPath): true,
		},
		watcher: fw,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start performs an initial sync, then blocks re-running the sync on
// file changes until ctx is cancelled.
//
// The parent directories are watched rather than the files themselves:
// editors that replace files by rename would otherwise detach the watch.
func (w *Watcher) Start(ctx context.Context) error {
	w.config.Logger.Println("Starting watcher")

	if err := w.runSync(); err != nil {
		return fmt.Errorf("initial sync failed: %w", err)
	}

	dirs := map[string]bool{}
	for target := range w.targets {
		dirs[filepath.Dir(target)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.config.Logger.Printf("Watching: %s, %s", w.engineCfg.BeOrgPath, w.engineCfg.JournellyPath)

	w.wg.Add(2)
	go w.watchFileEvents()
	go w.processPending()

	select {
	case <-ctx.Done():
		w.config.Logger.Println("Shutdown signal received")
		return w.Stop()
	case <-w.ctx.Done():
		return nil
	}
}

// Stop gracefully shuts down the watcher.
func (w *Watcher) Stop() error {
	w.config.Logger.Println("Stopping watcher")

	w.cancel()

	if err := w.watcher.Close(); err != nil {
		w.config.Logger.Printf("Error closing watcher: %v", err)
	}

	w.wg.Wait()

	w.config.Logger.Println("Watcher stopped")
	return nil
}

// watchFileEvents monitors filesystem events and queues sync runs.
func (w *Watcher) watchFileEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if !w.targets[filepath.Clean(event.Name)] {
				continue
			}

			w.mu.Lock()
			if time.Now().Before(w.suppressUntil) {
				w.mu.Unlock()
				continue
			}
			w.config.Logger.Printf("File event: %s %s", event.Op, event.Name)
			w.pendingAt = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.config.Logger.Printf("Watcher error: %v", err)
		}
	}
}

// processPending re-runs the sync once a queued change has settled.
func (w *Watcher) processPending() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			ready := !w.pendingAt.IsZero() && time.Since(w.pendingAt) >= w.config.Debounce
			if ready {
				w.pendingAt = time.Time{}
			}
			w.mu.Unlock()

			if !ready {
				continue
			}

			if err := w.runSync(); err != nil {
				w.config.Logger.Printf("WARNING: sync failed: %v", err)
			}
		}
	}
}

// runSync performs one engine pass and opens a suppression window so the
// watcher ignores the write events it just caused.
func (w *Watcher) runSync() error {
	cfg := w.engineCfg
	cfg.Logger = w.config.Logger

	summary, err := engine.Run(cfg)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.suppressUntil = time.Now().Add(2 * w.config.Debounce)
	w.mu.Unlock()

	w.config.Logger.Printf("Sync complete: %d tasks, %d warnings",
		summary.BeOrgTasks, len(summary.Warnings))
	return nil
}
