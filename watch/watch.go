// Package watch re-runs an action whenever watched files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the burst of events an editor emits on save
const DefaultDebounce = 300 * time.Millisecond

// Config contains the watcher configuration
type Config struct {
	// Files are watched through their parent directory so that editors
	// replacing the file on save are noticed
	Files []string
	// Dirs are watched for any change to their direct children
	Dirs     []string
	Debounce time.Duration
	// OnChange runs once on start and then after every debounced change
	OnChange func(ctx context.Context)
	Log      log.Logger
}

// Watcher debounces file system events into OnChange calls
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	dirs     map[string]struct{}
	debounce time.Duration
	onChange func(ctx context.Context)
	log      log.Logger
}

// New creates a watcher. Every watched directory, including the parents of
// watched files, must exist.
func New(cfg Config) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("OnChange is required")
	}
	if len(cfg.Files) == 0 && len(cfg.Dirs) == 0 {
		return nil, fmt.Errorf("nothing to watch")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		debounce: cfg.Debounce,
		onChange: cfg.OnChange,
		log:      cfg.Log,
	}

	add := func(dir string) error {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	}
	for _, f := range cfg.Files {
		f = filepath.Clean(f)
		w.files[f] = struct{}{}
		if err := add(filepath.Dir(f)); err != nil {
			return nil, err
		}
	}
	for _, d := range cfg.Dirs {
		d = filepath.Clean(d)
		w.dirs[d] = struct{}{}
		if err := add(d); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Run calls OnChange once and then after every burst of changes until ctx is
// cancelled. OnChange runs on the calling goroutine; events arriving while it
// runs are coalesced into the next call.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.onChange(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("Change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("File watcher error", "error", err)

		case <-fire:
			fire = nil
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	if _, ok := w.files[name]; ok {
		return true
	}
	_, ok := w.dirs[filepath.Dir(name)]
	return ok
}
