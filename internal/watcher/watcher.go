// Package watcher reports out-of-band transcript changes, such as messages
// hidden or unhidden by another process writing the chat file.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// ErrContainerMissing is returned when the watched directory does not exist.
var ErrContainerMissing = errors.New("chat container not found")

// Options configure a Watcher.
type Options struct {
	Dir      string
	Pattern  string
	Debounce time.Duration
	OnChange func()
	Logger   *zap.Logger
}

// Watcher calls OnChange once per quiet window after matching files change.
type Watcher struct {
	dir      string
	match    glob.Glob
	debounce time.Duration
	onChange func()
	log      *zap.Logger

	fs   *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// New validates options and creates the underlying fsnotify watcher.
func New(opts Options) (*Watcher, error) {
	info, err := os.Stat(opts.Dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrContainerMissing, opts.Dir)
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*"
	}
	match, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("watch pattern %q: %w", pattern, err)
	}
	if opts.OnChange == nil {
		return nil, errors.New("watcher requires an OnChange callback")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(opts.Dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		dir:      opts.Dir,
		match:    match,
		debounce: opts.Debounce,
		onChange: opts.OnChange,
		log:      log,
		fs:       fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins processing events until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.loop(ctx)
}

// Close stops the watcher and any pending debounce.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	err := w.fs.Close()
	w.wg.Wait()
	w.stopDebounce()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.String("path", w.dir), zap.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.match.Match(filepath.Base(event.Name)) {
		return
	}
	w.log.Debug("transcript changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.onChange()
	})
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
