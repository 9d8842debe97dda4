package linter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"
)

// WatchOptions tunes a FileWatcher.
type WatchOptions struct {
	// Debounce is how long a file must stay quiet before it is re-linted.
	Debounce time.Duration

	// HashCacheSize bounds the number of remembered content hashes.
	HashCacheSize int
}

// DefaultWatchOptions returns a 200ms debounce and room for 16k hashes.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Debounce:      200 * time.Millisecond,
		HashCacheSize: 16384,
	}
}

// ChangeFunc receives the fresh report of a re-linted file.
type ChangeFunc func(FileReport)

// FileWatcher re-lints files under the configured directories as they
// change.
//
// Usage:
//
//	fw, err := NewFileWatcher(linter, root, DefaultWatchOptions(), onChange, logger)
//	if err != nil {
//	    return err
//	}
//	if err := fw.Start(); err != nil {
//	    return err
//	}
//	defer fw.Stop()
type FileWatcher struct {
	linter   *Linter
	root     string
	watcher  *fsnotify.Watcher
	hashes   *lru.Cache[string, [32]byte]
	onChange ChangeFunc
	logger   *slog.Logger
	options  WatchOptions

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex
	pending        sync.WaitGroup

	stopChan chan struct{}
	loopDone chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// NewFileWatcher creates a watcher for root. onChange is called from
// timer goroutines, one file at a time per path.
func NewFileWatcher(l *Linter, root string, options WatchOptions, onChange ChangeFunc, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultWatchOptions()
	if options.Debounce <= 0 {
		options.Debounce = defaults.Debounce
	}
	if options.HashCacheSize <= 0 {
		options.HashCacheSize = defaults.HashCacheSize
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	hashes, err := lru.New[string, [32]byte](options.HashCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash cache: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &FileWatcher{
		linter:         l,
		root:           absRoot,
		watcher:        watcher,
		hashes:         hashes,
		onChange:       onChange,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
		loopDone:       make(chan struct{}),
	}, nil
}

// Start records the current content hash of every lintable file, adds
// watches for the configured directories and starts the event loop.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if fw.started {
		return fmt.Errorf("watcher already started")
	}

	files, err := fw.linter.Discover(fw.root)
	if err != nil {
		return err
	}
	for _, f := range files {
		if content, err := os.ReadFile(f); err == nil {
			fw.hashes.Add(f, blake3.Sum256(content))
		}
	}

	watched := 0
	for _, dir := range fw.linter.cfg.Directories {
		start := filepath.Join(fw.root, filepath.FromSlash(dir))
		if info, err := os.Stat(start); err != nil || !info.IsDir() {
			fw.logger.Debug("not watching missing directory", "dir", dir)
			continue
		}
		n, err := fw.addTree(start)
		if err != nil {
			return err
		}
		watched += n
	}

	fw.started = true
	go fw.eventLoop()

	fw.logger.Info("file watcher started", "root", fw.root, "dirs", watched, "files", len(files))
	return nil
}

// addTree watches dir and every non-excluded directory below it.
func (fw *FileWatcher) addTree(dir string) (int, error) {
	added := 0
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if fw.linter.discoverer.excluded(fw.root, path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		added++
		return nil
	})
	return added, err
}

// Stop stops the event loop and cancels pending re-lints, waiting for any
// that already started. Safe to call more than once.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.stopped = true
	started := fw.started
	close(fw.stopChan)
	fw.mu.Unlock()

	err := fw.watcher.Close()
	if started {
		<-fw.loopDone
	}

	fw.debounceMu.Lock()
	for path, timer := range fw.debounceTimers {
		if timer.Stop() {
			fw.pending.Done()
		}
		delete(fw.debounceTimers, path)
	}
	fw.debounceMu.Unlock()

	fw.pending.Wait()

	fw.logger.Info("file watcher stopped")
	return err
}

func (fw *FileWatcher) eventLoop() {
	defer close(fw.loopDone)

	for {
		select {
		case <-fw.stopChan:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if fw.linter.discoverer.excluded(fw.root, path) {
				return
			}
			if _, err := fw.addTree(path); err != nil {
				fw.logger.Warn("failed to watch new directory", "dir", path, "error", err)
			}
			return
		}
	}

	if !fw.linter.Watches(fw.root, path) {
		return
	}

	fw.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		fw.debounce(path)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		fw.forget(path)
	}
}

// debounce schedules a re-lint of path once it has been quiet for the
// debounce window. Each new event restarts the window.
func (fw *FileWatcher) debounce(path string) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	select {
	case <-fw.stopChan:
		return
	default:
	}

	if timer, ok := fw.debounceTimers[path]; ok && timer.Stop() {
		fw.pending.Done()
	}

	fw.pending.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(fw.options.Debounce, func() {
		defer fw.pending.Done()

		fw.debounceMu.Lock()
		if fw.debounceTimers[path] == timer {
			delete(fw.debounceTimers, path)
		}
		fw.debounceMu.Unlock()

		fw.relint(path)
	})
	fw.debounceTimers[path] = timer
}

// relint lints path again unless its content hash is unchanged. Files under
// watch are read into memory rather than mapped, since an editor may be
// truncating them mid-save.
func (fw *FileWatcher) relint(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fw.forget(path)
			return
		}
		fw.logger.Warn("failed to read file for re-lint", "file", path, "error", err)
		return
	}

	sum := blake3.Sum256(content)
	if prev, ok := fw.hashes.Get(path); ok && prev == sum {
		fw.logger.Debug("content unchanged, skipping", "file", path)
		return
	}

	rel, err := relPath(fw.root, path)
	if err != nil {
		fw.logger.Warn("failed to relativize path", "file", path, "error", err)
		return
	}

	start := time.Now()
	violations, err := fw.linter.LintSource(rel, content)
	if err != nil {
		fw.logger.Warn("failed to lint file", "file", path, "error", err)
		return
	}
	fw.hashes.Add(path, sum)

	fw.logger.Debug("file re-linted", "file", rel, "violations", len(violations), "ms", time.Since(start).Milliseconds())

	if fw.onChange != nil {
		fw.onChange(FileReport{Path: rel, AbsPath: path, Violations: violations})
	}
}

func (fw *FileWatcher) forget(path string) {
	fw.logger.Debug("forgetting file", "file", path)
	fw.hashes.Remove(path)
}

// Stats returns watcher counters.
func (fw *FileWatcher) Stats() FileWatcherStats {
	fw.debounceMu.Lock()
	pending := len(fw.debounceTimers)
	fw.debounceMu.Unlock()

	fw.mu.Lock()
	running := fw.started && !fw.stopped
	fw.mu.Unlock()

	return FileWatcherStats{
		PendingRelints: pending,
		KnownFiles:     fw.hashes.Len(),
		IsRunning:      running,
	}
}

// FileWatcherStats contains file watcher counters.
type FileWatcherStats struct {
	PendingRelints int
	KnownFiles     int
	IsRunning      bool
}
