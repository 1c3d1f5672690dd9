package extconfig

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
)

const defaultDebounce = 50 * time.Millisecond

type watchOptions struct {
	debounce time.Duration
	onReload func(applied int, err error)
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

// WithDebounce sets how long Watch waits after the last file event before
// reloading.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) { o.debounce = d }
}

// OnReload registers a callback invoked after every reload attempt with the
// number of accepted registrations or the load error.
func OnReload(fn func(applied int, err error)) WatchOption {
	return func(o *watchOptions) { o.onReload = fn }
}

// reloader re-applies the configured extensions, replacing the tables of
// every type the previous or the new load touches in one step.
type reloader struct {
	reg      *schema.Registry
	patterns []string
	touched  []string
}

func (r *reloader) reload() (int, error) {
	exts, err := Load(r.patterns...)
	if err != nil {
		// Keep the registry as it was; a half-written file is common while
		// an editor saves.
		return 0, err
	}

	stale := slices.Clone(r.touched)
	for _, t := range Types(exts) {
		if !slices.Contains(stale, t) {
			stale = append(stale, t)
		}
	}

	applied := r.reg.Replace(stale, Registrations(exts))
	r.touched = Types(exts)
	return applied, nil
}

// Watch loads the extension files matched by patterns, applies them to
// reg, and reloads them whenever a matching file is written, created,
// renamed or removed. A reload clears every entity type that the previous
// load or the new one targets before registering again, so programmatic
// registrations on those types are dropped too. Clearing and registering
// happen under one registry lock. Load failures are logged
// and leave the registry unchanged. Watch blocks until ctx is done.
func Watch(ctx context.Context, reg *schema.Registry, patterns []string, logger *slog.Logger, opts ...WatchOption) error {
	o := watchOptions{debounce: defaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(patterns) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	r := &reloader{reg: reg, patterns: patterns}
	report := func(applied int, err error) {
		if err != nil {
			logger.Error("extension reload failed", "error", err)
		} else {
			logger.Info("extensions reloaded", "applied", applied, "types", strings.Join(r.touched, ","))
		}
		if o.onReload != nil {
			o.onReload(applied, err)
		}
	}
	report(r.reload())

	timer := time.NewTimer(o.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isRecursive(patterns) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addTree(watcher, event.Name)
				}
			}
			if !relevant(event, patterns) {
				continue
			}
			timer.Reset(o.debounce)

		case <-timer.C:
			report(r.reload())

		case wErr, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// relevant reports whether event touches a file named by patterns.
func relevant(event fsnotify.Event, patterns []string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(event.Name)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !isPattern(p) {
			if filepath.Clean(p) == name {
				return true
			}
			continue
		}
		if ok, _ := doublestar.PathMatch(filepath.Clean(p), name); ok {
			return true
		}
	}
	return false
}

func isRecursive(patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(p, "**") {
			return true
		}
	}
	return false
}

// watchDirs returns the directories to watch: the parent of every plain
// file, the fixed base of every pattern, and for "**" patterns every
// directory below that base.
func watchDirs(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !isPattern(p) {
			add(filepath.Dir(p))
			continue
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		base = filepath.FromSlash(base)
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			continue
		}
		if !strings.Contains(p, "**") {
			add(base)
			continue
		}
		_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
