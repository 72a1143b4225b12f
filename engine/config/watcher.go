package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last change before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a settings file when it changes on disk and delivers the result on Updates.
// Bursts of events (editors often write, truncate and rename) collapse into one reload.
// A file that fails to load is reported on Errors and the previous settings stay in effect.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *slog.Logger

	Updates chan Settings
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatcherOption is a functional option for NewWatcher.
type WatcherOption func(w *Watcher)

// WithDebounce sets the quiet period before a reload.
//
// Parameters:
//   - d: the debounce duration, values <= 0 keep the default
//
// Returns:
//   - WatcherOption: functional option to set the debounce
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger. Defaults to slog.Default().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - WatcherOption: functional option to set the logger
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher watches the directory holding path and reloads path whenever it changes.
//
// Parameters:
//   - path: the settings file
//   - options: functional options
//
// Returns:
//   - *Watcher: the running watcher; call Close when done
//   - error: ErrNoPath, or an fsnotify setup error
func NewWatcher(path string, options ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	// the directory, not the file, so replace-by-rename saves are seen
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: DefaultDebounce,
		Updates:  make(chan Settings, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, option := range options {
		option(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes Updates and Errors. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			s, err := Load(w.path)
			if err != nil {
				w.logger.Warn("settings reload failed", "path", w.path, "error", err)
				w.report(err)
				continue
			}
			w.logger.Info("settings reloaded", "path", w.path)
			select {
			case w.Updates <- s:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

// report delivers err without blocking; if the last error is still unread the new one is dropped.
func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
