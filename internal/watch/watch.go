// Package watch reloads the input file when it changes on disk.
package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 150 * time.Millisecond

var (
	ErrAlreadyStarted = errors.New("watch: already started")
	ErrFileRemoved    = errors.New("watch: watched file was removed")
)

type Option func(*Watcher)

// WithDebounce coalesces bursts of writes into one notification.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// Watcher signals on Changed after the watched file is written, created or
// renamed into place. The directory is watched so editors that replace the
// file atomically are seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	onError  func(error)

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	timer   *time.Timer
	started bool
	changed chan struct{}
	done    chan struct{}
}

func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		onError:  func(error) {},
		changed:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.fsw, w.cancel = fsw, cancel
	w.done = make(chan struct{})
	w.started = true
	go w.loop(ctx, fsw, w.done)

	w.logger.Debug("watching input", "path", w.path)
	return nil
}

// Stop ends watching and waits for the event loop to exit. Changed is left
// open so that pending receivers simply never fire.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.fsw.Close()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.started = false
	done := w.done
	w.mu.Unlock()
	<-done
}

func (w *Watcher) Changed() <-chan struct{} { return w.changed }
func (w *Watcher) Path() string             { return w.path }

func (w *Watcher) IsStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	target := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				w.onError(ErrFileRemoved)
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.trigger()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return
	}
	w.logger.Info("input changed", "path", w.path)
	select {
	case w.changed <- struct{}{}:
	default:
	}
}
