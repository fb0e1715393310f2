// Package watch reports changes to the markdown files under a directory
// tree. Bursts of events are debounced into one callback.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc receives the changed markdown paths in lexical order
type ChangeFunc func(ctx context.Context, paths []string)

// Config holds the watcher settings
type Config struct {
	Root     string
	Debounce time.Duration
	OnChange ChangeFunc
}

// Validate ensures the required settings are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("Root", c.Root, vb)
	if c.OnChange == nil {
		vb.RequiredField("OnChange")
	}
	if c.Debounce < 0 {
		vb.InvalidField("Debounce", "must not be negative")
	}

	return vb.Build()
}

// Watcher watches a rules tree
type Watcher struct {
	root     string
	debounce time.Duration
	onChange ChangeFunc
}

// New creates a watcher. Nothing is watched until Run.
func New(cfg *Config) (*Watcher, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		root:     cfg.Root,
		debounce: debounce,
		onChange: cfg.OnChange,
	}, nil
}

// Run watches until ctx is done. Directories created while running are
// added to the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			slog.Warn("failed to close watcher", "error", err)
		}
	}()

	if err := addTree(fsw, w.root); err != nil {
		return err
	}
	slog.InfoContext(ctx, "watching rules tree", "root", w.root)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(ctx, fsw, event, pending) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)

			slog.DebugContext(ctx, "rules changed", "paths", len(paths))
			w.onChange(ctx, paths)
		}
	}
}

// handle records a markdown change and reports whether one was recorded
func (w *Watcher) handle(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event, pending map[string]struct{}) bool {
	if event.Has(fsnotify.Create) && !hidden(event.Name) {
		if err := addTree(fsw, event.Name); err == nil {
			slog.DebugContext(ctx, "watching new path", "path", event.Name)
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".md") || hidden(event.Name) {
		return false
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	pending[filepath.ToSlash(rel)] = struct{}{}
	return true
}

// addTree watches root and every non-hidden directory below it. A root
// that is a file is ignored.
func addTree(fsw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(p)
	})
	if err != nil {
		return errors.Wrapf(err, "failed to watch %s", root)
	}
	return nil
}

func hidden(p string) bool {
	return strings.HasPrefix(filepath.Base(p), ".")
}
