// Package watch reloads a catalog whenever one of its resource files
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/loopcontext/msgcode"
	"go.uber.org/zap"
)

type WatcherCfg struct {
	Logger *zap.Logger

	Catalog msgcode.Catalog
	Loader  msgcode.Loader

	// Locators are OS paths, loaded in order on every reload.
	Locators []string
	Mode     msgcode.LoadMode

	// Debounce groups bursts of events (editors often write a file in
	// several steps). Default: 100ms.
	Debounce time.Duration

	// OnReload, when set, is called after every reload attempt.
	OnReload func(err error)
}

type Watcher struct {
	Cfg WatcherCfg
	Log *zap.Logger

	watcher *fsnotify.Watcher
	files   map[string]struct{}

	mu      sync.Mutex
	reloads int
}

func NewWatcher(cfg WatcherCfg) (*Watcher, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("missing catalog")
	}
	if cfg.Loader == nil {
		return nil, fmt.Errorf("missing loader")
	}
	if len(cfg.Locators) == 0 {
		return nil, fmt.Errorf("no resource to watch")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 100 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create watcher: %w", err)
	}

	w := &Watcher{
		Cfg:     cfg,
		Log:     cfg.Logger,
		watcher: watcher,
		files:   map[string]struct{}{},
	}

	// Directories are watched rather than files so that resources
	// replaced through a rename are still seen.
	dirs := map[string]struct{}{}
	for _, locator := range cfg.Locators {
		path, err := filepath.Abs(locator)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("invalid path %q: %w", locator, err)
		}
		w.files[path] = struct{}{}
		dirs[filepath.Dir(path)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run watches resources until ctx is canceled. The watcher is closed when
// Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}

			w.Log.Debug("resource changed",
				zap.String("path", event.Name),
				zap.Stringer("op", event.Op))

			if timer == nil {
				timer = time.NewTimer(w.Cfg.Debounce)
			} else {
				timer.Reset(w.Cfg.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.Reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, found := w.files[path]
	return found
}

// Reload loads every watched resource again. On failure the catalog keeps
// its previous content.
func (w *Watcher) Reload(ctx context.Context) error {
	err := w.Cfg.Catalog.LoadAll(ctx, w.Cfg.Loader, w.Cfg.Locators, w.Cfg.Mode)
	if err != nil {
		w.Log.Error("cannot reload messages", zap.Error(err))
	} else {
		w.Log.Info("messages reloaded",
			zap.Int("resources", len(w.Cfg.Locators)),
			zap.Int("messages", w.Cfg.Catalog.Len()))
	}

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()

	if w.Cfg.OnReload != nil {
		w.Cfg.OnReload(err)
	}

	return err
}

// Reloads returns the number of reload attempts so far.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}
