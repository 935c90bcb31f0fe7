// Package watcher reports changes to the files of a content directory, using
// fsnotify with a polling fallback.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/mahar/pkg/content"
	"github.com/vanderheijden86/mahar/pkg/debug"
	"github.com/vanderheijden86/mahar/pkg/timer"
)

// DefaultPollInterval is the default polling interval for fallback mode.
const DefaultPollInterval = 2 * time.Second

// EnvForcePoll forces polling mode when set to a true value.
const EnvForcePoll = "MAHAR_FORCE_POLL"

// Common errors.
var (
	ErrDirRemoved     = errors.New("watched directory was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
	ErrNotDir         = errors.New("not a directory")
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounceDuration = d
	}
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.pollInterval = d
	}
}

// WithOnChange sets the callback invoked when content files change.
func WithOnChange(fn func()) WatcherOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the callback invoked on errors.
func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) WatcherOption {
	return func(w *Watcher) {
		w.forcePoll = force
	}
}

// WithClock sets the clock used for debouncing.
func WithClock(c timer.Clock) WatcherOption {
	return func(w *Watcher) {
		w.clock = c
	}
}

// IsContentFile reports whether name (a base name) is one of the content
// collection files.
func IsContentFile(name string) bool {
	ext := filepath.Ext(name)
	if !slices.Contains(content.Extensions, ext) {
		return false
	}
	return slices.Contains(content.Collections, strings.TrimSuffix(name, ext))
}

// Watcher monitors a content directory for changes.
type Watcher struct {
	dir              string
	debounceDuration time.Duration
	pollInterval     time.Duration
	onChange         func()
	onError          func(error)
	forcePoll        bool
	clock            timer.Clock

	fsWatcher   *fsnotify.Watcher
	debouncer   *Debouncer
	useFallback bool
	lastState   string

	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex
	changeCh chan struct{}
}

// NewWatcher creates a watcher for the content directory dir.
func NewWatcher(dir string, opts ...WatcherOption) (*Watcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:              absDir,
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		onChange:         func() {},
		onError:          func(error) {},
		clock:            timer.Real(),
		changeCh:         make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.debouncer = NewDebouncerWithClock(w.debounceDuration, w.clock)

	return w, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		if os.IsPermission(err) {
			return ErrPermission
		}
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watching %s: %w", w.dir, ErrNotDir)
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.lastState = snapshot(w.dir)
	w.useFallback = w.forcePoll || envBool(EnvForcePoll)

	if !w.useFallback {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			if err := fsw.Add(w.dir); err != nil {
				fsw.Close()
				w.useFallback = true
			} else {
				w.fsWatcher = fsw
				go w.watchFsnotify(w.ctx, fsw)
			}
		} else {
			w.useFallback = true
		}
	}

	if w.useFallback {
		debug.Log("watcher: polling %s every %v", w.dir, w.pollInterval)
		go w.watchPolling(w.ctx)
	}

	w.started = true
	return nil
}

// Stop stops watching. The Changed channel stays open so a pending
// WatchContentCmd simply never fires.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}

	if w.cancel != nil {
		w.cancel()
	}

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}

	w.debouncer.Cancel()
	w.started = false
}

// IsPolling returns true if the watcher is using polling mode.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.useFallback
}

// IsStarted returns true if the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns a channel that receives when content changes.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// PollInterval returns the polling interval used when polling mode is active.
func (w *Watcher) PollInterval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pollInterval
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// snapshot describes the content files of dir: name, size and mtime of each.
func snapshot(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var parts []string
	for _, e := range entries {
		if e.IsDir() || !IsContentFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", e.Name(), info.Size(), info.ModTime().UnixNano()))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func (w *Watcher) watchFsnotify(ctx context.Context, fsw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) == w.dir && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.onError(ErrDirRemoved)
				continue
			}
			if !IsContentFile(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.debouncer.Trigger(w.notifyChange)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) watchPolling(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := os.Stat(w.dir); err != nil {
				switch {
				case os.IsNotExist(err):
					w.onError(ErrDirRemoved)
				case os.IsPermission(err):
					w.onError(ErrPermission)
				default:
					w.onError(err)
				}
				continue
			}

			state := snapshot(w.dir)
			w.mu.Lock()
			changed := state != w.lastState
			w.lastState = state
			w.mu.Unlock()

			if changed {
				w.debouncer.Trigger(w.notifyChange)
			}
		}
	}
}

// notifyChange invokes the onChange callback and signals the change channel.
func (w *Watcher) notifyChange() {
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if !started {
		return
	}

	debug.Log("watcher: content changed in %s", w.dir)
	w.onChange()

	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}
