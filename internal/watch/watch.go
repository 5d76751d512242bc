// Package watch rebuilds the index whenever the report tree changes.
// It watches the root recursively, coalesces event bursts through a
// debounce window, and funnels every rebuild through a single worker so
// concurrent triggers collapse into at most one pending run.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/reportindex/internal/logfields"
)

// BuildFunc performs one full scan-render-write pass.
type BuildFunc func(ctx context.Context) error

// Options configures one watch session.
type Options struct {
	Root     string        // watched directory, the scan root
	Output   string        // output file base name, ignored as an event source
	Debounce time.Duration // event coalescing window
	Every    time.Duration // periodic unconditional rebuild interval, 0 disables
}

// Run performs an initial build, then keeps the index current until ctx is
// cancelled. Rebuild failures are logged and the loop keeps serving later
// changes; only watcher setup can fail.
func Run(ctx context.Context, opts Options, build BuildFunc) error {
	runBuild(ctx, build)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addDirsRecursive(watcher, opts.Root); err != nil {
		return err
	}

	rebuildReq, trigger := newDebouncer(opts.Debounce)
	startRebuildWorker(ctx, build, rebuildReq)

	if opts.Every > 0 {
		scheduler, err := startPeriodicRescan(opts.Every, rebuildReq)
		if err != nil {
			return err
		}
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				slog.Warn("scheduler shutdown", logfields.Error(err))
			}
		}()
	}

	slog.Info("watching for changes", logfields.Target(opts.Root))
	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping watch")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleEvent(watcher, ev, opts.Output, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// runBuild executes one tagged build pass.
func runBuild(ctx context.Context, build BuildFunc) {
	runID := uuid.NewString()
	start := time.Now()
	slog.Info("rebuilding index", logfields.RunID(runID))
	if err := build(ctx); err != nil {
		slog.Warn("rebuild failed", logfields.RunID(runID), logfields.Error(err))
		return
	}
	slog.Debug("rebuild complete",
		logfields.RunID(runID),
		logfields.DurationMS(float64(time.Since(start).Nanoseconds())/1e6))
}

// newDebouncer returns the rebuild request channel and a trigger that
// coalesces calls within the debounce window into one request.
func newDebouncer(window time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(window, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	return rebuildReq, trigger
}

// startRebuildWorker drains rebuild requests on a single goroutine.
// Requests arriving while a build runs collapse into one pending rerun.
func startRebuildWorker(ctx context.Context, build BuildFunc, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				runBuild(ctx, build)

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

// startPeriodicRescan schedules unconditional rebuild requests so external
// changes the watcher misses (network mounts, whole-tree swaps) are still
// picked up.
func startPeriodicRescan(every time.Duration, rebuildReq chan struct{}) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			slog.Debug("periodic rescan", logfields.Interval(every.String()))
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		}),
		gocron.WithName("periodic-rescan"),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("schedule periodic rescan: %w", err)
	}
	scheduler.Start()
	slog.Info("periodic rescan enabled", logfields.Interval(every.String()))
	return scheduler, nil
}

// handleEvent filters one filesystem event and arms the debounce timer.
// Newly created directories join the watch set immediately.
func handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, output string, trigger func()) {
	if ignoreEvent(ev.Name, output) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// addDirsRecursive watches root and every visible directory below it. A
// root that cannot be walked or registered fails the watch; deeper failures
// only log and the watch stays up.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch root: %w", err)
			}
			slog.Warn("watch walk failed", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				if path == root {
					return fmt.Errorf("watch root: %w", err)
				}
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// ignoreEvent reports whether a filesystem event must not trigger a
// rebuild: hidden files, editor temp/swap files, and the generated output
// document itself (which would otherwise rebuild forever).
func ignoreEvent(path, output string) bool {
	base := filepath.Base(path)

	if output != "" && base == output {
		return true
	}
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	if base == "Thumbs.db" {
		return true
	}

	return false
}
