// Package watch uploads text files as they appear in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Defaults for batching filesystem events.
const (
	DefaultDebounce      = 500 * time.Millisecond
	DefaultRetryInterval = 2 * time.Second
)

// Watcher collects created and written .txt files under a directory and
// submits them as one upload batch once events go quiet. Each path is
// submitted at most once per run.
type Watcher struct {
	dir      string
	upload   driving.UploadOrchestrator
	debounce time.Duration
	retry    time.Duration
	onBatch  func(*domain.BatchResult)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithRetryInterval sets how long the watcher waits when the session is busy.
func WithRetryInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.retry = d
	}
}

// WithBatchHandler registers a callback for every settled batch.
func WithBatchHandler(fn func(*domain.BatchResult)) Option {
	return func(w *Watcher) {
		w.onBatch = fn
	}
}

// New creates a watcher for dir.
func New(dir string, upload driving.UploadOrchestrator, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		upload:   upload,
		debounce: DefaultDebounce,
		retry:    DefaultRetryInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Files still pending at that point are
// not uploaded.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: %w: not a directory", w.dir, domain.ErrInvalidInput)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := addTree(fsw, w.dir); err != nil {
		return err
	}
	logger.Info("Watching %s", w.dir)

	pending := make(map[string]struct{})
	submitted := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if isNewDir(event) {
				if err := addTree(fsw, event.Name); err != nil {
					logger.Warn("Watching new directory: %v", err)
				}
				continue
			}
			path, ok := handleEvent(event)
			if !ok {
				continue
			}
			if _, done := submitted[path]; done {
				continue
			}
			logger.Debug("Queued %s", path)
			pending[path] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			if w.flush(ctx, pending) {
				for p := range pending {
					submitted[p] = struct{}{}
				}
				pending = make(map[string]struct{})
			} else {
				timer.Reset(w.retry)
			}
		}
	}
}

// flush submits the pending files. It returns false when the batch should
// be retried later.
func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) bool {
	if len(pending) == 0 {
		return true
	}

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	files := make([]domain.CandidateFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, filesystem.Candidate(p))
	}

	result, err := w.upload.Submit(ctx, files)
	if errors.Is(err, domain.ErrPipelineBusy) {
		logger.Debug("Session busy, retrying %d files in %s", len(files), w.retry)
		return false
	}
	if err != nil {
		logger.Warn("Upload of %d files failed: %v", len(files), err)
		return true
	}

	logger.Info("Uploaded %d of %d watched files", len(result.Accepted), result.Total())
	if w.onBatch != nil {
		w.onBatch(result)
	}
	return true
}

// handleEvent returns the file to upload for an event, if any.
// Only creates and writes of visible .txt files qualify.
func handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if filesystem.IsHidden(event.Name) || !filesystem.Accepted(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

func isNewDir(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) || filesystem.IsHidden(event.Name) {
		return false
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

// addTree watches root and every visible directory below it.
func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && filesystem.IsHidden(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
