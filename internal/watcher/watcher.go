// Package watcher ingests PDFs dropped into a directory. It debounces
// filesystem events (editors and downloads emit several per file) and
// rate-limits uploads so a bulk copy does not swamp the embedding
// model.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/logger"
)

const (
	// DefaultDebounce is how long a file must stay quiet before it
	// is ingested. Covers write-in-progress and create+write pairs.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultIngestRate caps uploads per second across all files.
	DefaultIngestRate = 1.0

	// DefaultIngestBurst allows a short run of files to start
	// without waiting, e.g. a handful pasted at once.
	DefaultIngestBurst = 2
)

// Uploader ingests one document. Satisfied by the assistant service.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (domain.UploadReceipt, error)
}

// Config adjusts watch behaviour. Zero values select defaults.
type Config struct {
	// Debounce is the quiet period before a changed file is read.
	Debounce time.Duration

	// IngestRate is the maximum uploads per second.
	IngestRate float64

	// IngestBurst is the token bucket size for IngestRate.
	IngestBurst int
}

// Watcher feeds new and changed PDFs from one directory into an
// Uploader.
type Watcher struct {
	uploader Uploader
	debounce time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher delivering to uploader.
func New(uploader Uploader, cfg Config) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.IngestRate <= 0 {
		cfg.IngestRate = DefaultIngestRate
	}
	if cfg.IngestBurst <= 0 {
		cfg.IngestBurst = DefaultIngestBurst
	}

	return &Watcher{
		uploader: uploader,
		debounce: cfg.Debounce,
		limiter:  rate.NewLimiter(rate.Limit(cfg.IngestRate), cfg.IngestBurst),
		pending:  make(map[string]*time.Timer),
	}
}

// Watch ingests existing PDFs in dir, then blocks processing
// filesystem events until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("Watching %s for PDFs", dir)

	// Catch up on files that were already there.
	if err := w.ingestExisting(ctx, dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := classifyEvent(event); ok {
				w.schedule(ctx, path)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// ingestExisting uploads PDFs already present when the watch starts.
func (w *Watcher) ingestExisting(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isPDF(entry.Name()) {
			continue
		}
		if err := w.ingest(ctx, filepath.Join(dir, entry.Name())); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("ingest %s: %v", entry.Name(), err)
		}
	}

	return nil
}

// classifyEvent reports whether event names a PDF worth ingesting and
// returns its path. Only Create and Write matter; removals and
// renames leave the store as-is because chunks have no per-document
// delete.
func classifyEvent(event fsnotify.Event) (string, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return "", false
	}
	if !isPDF(event.Name) {
		return "", false
	}
	return event.Name, true
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// schedule (re)arms the debounce timer for path. Every further event
// for the same file pushes ingestion back by the full quiet period.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if err := w.ingest(ctx, path); err != nil && ctx.Err() == nil {
			logger.Warn("ingest %s: %v", filepath.Base(path), err)
		}
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// ingest reads path and uploads it, respecting the rate limit.
func (w *Watcher) ingest(ctx context.Context, path string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	receipt, err := w.uploader.Upload(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}

	logger.Info("Ingested %s (%d chunks)", receipt.Filename, receipt.Chunks)
	return nil
}
