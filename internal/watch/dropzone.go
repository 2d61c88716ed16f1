// Package watch turns a directory into a drop region. Files copied or moved
// into the directory produce the same drag sequence a pointer would:
// dragenter when the file appears, dragover while it is still being written,
// dragleave if it disappears again, and drop once it has been quiet for the
// settle delay.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yildizm/MazeSolve/internal/logger"
	"github.com/yildizm/MazeSolve/internal/workflow"
)

// DefaultSettle is how long a file must stay unchanged before it is dropped
const DefaultSettle = 500 * time.Millisecond

// Options configures a DropZone
type Options struct {
	Dir    string
	Settle time.Duration
	Logger *logger.Logger
}

// DropZone watches one directory and emits drag events for files arriving in it
type DropZone struct {
	dir     string
	settle  time.Duration
	watcher *fsnotify.Watcher
	events  chan *workflow.DragEvent
	pending map[string]time.Time
	log     *logger.Logger
}

// New creates a drop zone for an existing directory
func New(opts Options) (*DropZone, error) {
	if err := validateDropDir(opts.Dir); err != nil {
		return nil, fmt.Errorf("invalid drop directory: %w", err)
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Clean(opts.Dir)
	if err := watcher.Add(dir); err != nil {
		closeWatcher(watcher, opts.Logger)
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &DropZone{
		dir:     dir,
		settle:  opts.Settle,
		watcher: watcher,
		events:  make(chan *workflow.DragEvent, 16),
		pending: make(map[string]time.Time),
		log:     opts.Logger.WithComponent("dropzone"),
	}, nil
}

// Dir returns the watched directory
func (z *DropZone) Dir() string {
	return z.dir
}

// Events returns the drag event stream. It is closed when Run returns.
func (z *DropZone) Events() <-chan *workflow.DragEvent {
	return z.events
}

// Run watches until ctx is done or the watcher fails
func (z *DropZone) Run(ctx context.Context) error {
	defer close(z.events)
	defer closeWatcher(z.watcher, z.log)

	timer := time.NewTimer(z.settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	z.log.Info("watching %s", z.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-z.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if ev := z.handle(event, time.Now()); ev != nil {
				if !z.emit(ctx, ev) {
					return nil
				}
			}
			if len(z.pending) > 0 {
				timer.Reset(z.settle)
			}

		case <-timer.C:
			for _, ev := range z.flush(time.Now()) {
				if !z.emit(ctx, ev) {
					return nil
				}
			}
			if len(z.pending) > 0 {
				timer.Reset(z.settle)
			}

		case err, ok := <-z.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			z.log.WarnWithFields("watcher error", []logger.Field{logger.Error(err)})
		}
	}
}

// handle maps one filesystem event onto the drag sequence
func (z *DropZone) handle(event fsnotify.Event, now time.Time) *workflow.DragEvent {
	if ignored(event.Name) {
		return nil
	}

	_, tracked := z.pending[event.Name]

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if !tracked {
			return nil
		}
		delete(z.pending, event.Name)
		z.log.DebugWithFields("file left drop zone", []logger.Field{logger.Path(event.Name)})
		return workflow.NewDragEvent(workflow.DragLeave)

	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return nil
		}
		z.pending[event.Name] = now
		if tracked {
			return workflow.NewDragEvent(workflow.DragOver)
		}
		z.log.DebugWithFields("file entered drop zone", []logger.Field{logger.Path(event.Name)})
		return workflow.NewDragEvent(workflow.DragEnter)
	}

	return nil
}

// flush drops every pending file that has been quiet for the settle delay
func (z *DropZone) flush(now time.Time) []*workflow.DragEvent {
	var drops []*workflow.DragEvent
	for path, last := range z.pending {
		if now.Sub(last) < z.settle {
			continue
		}
		delete(z.pending, path)
		z.log.InfoWithFields("file dropped", []logger.Field{logger.Path(path)})
		drops = append(drops, workflow.NewDragEvent(workflow.Drop, path))
	}
	return drops
}

func (z *DropZone) emit(ctx context.Context, ev *workflow.DragEvent) bool {
	select {
	case z.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// ignored filters hidden and partial-download files
func ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return true
	}
	for _, suffix := range []string{".part", ".crdownload", ".tmp", ".swp"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

func closeWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}

// validateDropDir validates that a path is a directory that can be watched
func validateDropDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty directory path")
	}

	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}

	return nil
}
