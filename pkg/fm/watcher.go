package fm

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reporting a change.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes under a set of font directories. It does not
// touch any database itself; callers decide what a change means.
type Watcher struct {
	dirs     []string
	onChange func()
	debounce time.Duration
	log      zerolog.Logger

	fsw   *fsnotify.Watcher
	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatchLogger sets the logger used for watch diagnostics
func WithWatchLogger(log zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = log
	}
}

// NewWatcher creates a watcher over dirs and their subdirectories.
// Directories that do not exist are skipped.
func NewWatcher(dirs []string, onChange func(), opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		dirs:     append([]string(nil), dirs...),
		onChange: onChange,
		debounce: DefaultDebounce,
		log:      zerolog.Nop(),
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, dir := range w.dirs {
		w.addTree(dir)
	}
	return w, nil
}

// Watched returns the directories currently registered with fsnotify
func (w *Watcher) Watched() []string {
	return w.fsw.WatchList()
}

// Start processes events until ctx is done or Close is called
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("font directory watch error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addTree(event.Name)
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	w.log.Debug().Str("op", event.Op.String()).Str("file", event.Name).Msg("font directory changed")
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	if w.onChange != nil {
		w.onChange()
	}
}

func (w *Watcher) addTree(root string) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Debug().Err(err).Str("dir", path).Msg("watching font directory")
		}
		return nil
	})
}
