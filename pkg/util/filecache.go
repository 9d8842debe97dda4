package util

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// ErrCacheLimit is returned when loading another file would exceed the
// configured file count or memory limit.
var ErrCacheLimit = errors.New("file cache limit reached")

// FileCache gives read-only access to source files through memory maps,
// falling back to os.ReadFile when mapping fails.
//
// Every Get must be paired with a Release. Data stays valid until the last
// Release for that path, or Close. Callers that keep content past that
// point must copy it.
type FileCache interface {
	Get(path string) (*MappedFile, error)
	Release(path string) error
	Size() int
	Stats() FileCacheStats
	Close() error
}

// FileCacheConfig controls FileCache limits. Zero means unlimited.
type FileCacheConfig struct {
	MaxFiles    int
	MaxMemoryMB int
	Logger      *slog.Logger
}

// DefaultFileCacheConfig bounds the cache at 10k files and 2GB of mapped
// address space. Linted files are released as soon as they are checked, so
// the limits only bite when many workers hold large files at once.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{
		MaxFiles:    10000,
		MaxMemoryMB: 2048,
	}
}

// MappedFile is one cached file.
type MappedFile struct {
	Path string

	// Data is the mapped region, or an in-memory copy for fallback and
	// empty files.
	Data mmap.MMap

	file   *os.File
	mapped bool
	refs   int
}

// Bytes returns the file content.
func (mf *MappedFile) Bytes() []byte { return mf.Data }

// FileCacheStats tracks cache activity.
type FileCacheStats struct {
	FilesLoaded   int64
	FilesReleased int64
	FilesCached   int
	CacheHits     int64
	CacheMisses   int64
	MmapFailures  int64
	MappedBytes   int64
}

// NewFileCache creates a FileCache. A nil config means the defaults.
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &fileCache{
		config: config,
		files:  make(map[string]*MappedFile),
		logger: logger,
	}
}

type fileCache struct {
	config *FileCacheConfig
	logger *slog.Logger

	mu    sync.RWMutex
	files map[string]*MappedFile
	bytes int64

	statsMu sync.Mutex
	stats   FileCacheStats
}

func (fc *fileCache) Get(path string) (*MappedFile, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.files[path]; ok {
		mf.refs++
		fc.record(func(s *FileCacheStats) { s.CacheHits++ })
		return mf, nil
	}
	fc.record(func(s *FileCacheStats) { s.CacheMisses++ })

	mf, err := fc.load(path)
	if err != nil {
		return nil, err
	}
	mf.refs = 1
	fc.files[path] = mf
	fc.bytes += int64(len(mf.Data))
	fc.record(func(s *FileCacheStats) { s.FilesLoaded++ })
	return mf, nil
}

// load maps path after checking limits. Must be called with mu held.
func (fc *fileCache) load(path string) (*MappedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if err := fc.checkLimits(stat.Size()); err != nil {
		file.Close()
		return nil, err
	}

	// Zero-length files cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		return &MappedFile{Path: path, Data: mmap.MMap{}}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err == nil {
		return &MappedFile{Path: path, Data: data, file: file, mapped: true}, nil
	}

	fc.logger.Debug("mmap failed, reading file", "file", path, "error", err)
	fc.record(func(s *FileCacheStats) { s.MmapFailures++ })
	file.Close()

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, readErr)
	}
	return &MappedFile{Path: path, Data: mmap.MMap(content)}, nil
}

func (fc *fileCache) checkLimits(size int64) error {
	if fc.config.MaxFiles > 0 && len(fc.files) >= fc.config.MaxFiles {
		return fmt.Errorf("%w: %d files", ErrCacheLimit, fc.config.MaxFiles)
	}
	if fc.config.MaxMemoryMB > 0 {
		limit := int64(fc.config.MaxMemoryMB) * 1024 * 1024
		if fc.bytes+size > limit {
			return fmt.Errorf("%w: %d MB", ErrCacheLimit, fc.config.MaxMemoryMB)
		}
	}
	return nil
}

// Release drops one reference to path and unmaps it when none remain.
// Releasing an unknown path is a no-op.
func (fc *fileCache) Release(path string) error {
	fc.mu.Lock()
	mf, ok := fc.files[path]
	if !ok {
		fc.mu.Unlock()
		return nil
	}
	mf.refs--
	if mf.refs > 0 {
		fc.mu.Unlock()
		return nil
	}
	delete(fc.files, path)
	fc.bytes -= int64(len(mf.Data))
	fc.mu.Unlock()

	fc.record(func(s *FileCacheStats) { s.FilesReleased++ })
	return mf.close()
}

func (fc *fileCache) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.files)
}

func (fc *fileCache) Stats() FileCacheStats {
	fc.mu.RLock()
	cached, mapped := len(fc.files), fc.bytes
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	stats := fc.stats
	stats.FilesCached = cached
	stats.MappedBytes = mapped
	return stats
}

func (fc *fileCache) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var errs []error
	for path, mf := range fc.files {
		if err := mf.close(); err != nil {
			fc.logger.Warn("failed to release file", "file", path, "error", err)
			errs = append(errs, err)
		}
	}
	fc.files = make(map[string]*MappedFile)
	fc.bytes = 0

	return errors.Join(errs...)
}

func (fc *fileCache) record(update func(*FileCacheStats)) {
	fc.statsMu.Lock()
	update(&fc.stats)
	fc.statsMu.Unlock()
}

func (mf *MappedFile) close() error {
	var errs []error
	if mf.mapped {
		if err := mf.Data.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap %q: %w", mf.Path, err))
		}
	}
	if mf.file != nil {
		if err := mf.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", mf.Path, err))
		}
	}
	mf.Data = nil
	return errors.Join(errs...)
}
