package contextfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FilterCache memoizes compiled PatternFilters keyed by the canonical
// absolute path of the directory that owns them. A directory whose ignore
// file is absent still caches a default-only filter, so later filesystem
// edits are not observed until Clear. The cache is safe for concurrent use;
// filters for different directories never block each other because
// compilation happens outside the write lock.
type FilterCache struct {
	mutex   sync.RWMutex
	filters map[string]*PatternFilter
	logger  *zap.Logger
}

// NewFilterCache constructs an empty cache. A nil logger disables the
// ignore-file degradation warning.
func NewFilterCache(logger *zap.Logger) *FilterCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterCache{
		filters: make(map[string]*PatternFilter),
		logger:  logger,
	}
}

// Get returns the filter for the directory, building and memoizing it on
// first use. Repeated calls for the same directory return the identical
// instance until Clear. When concurrent callers race to build the same
// directory's filter, the first stored instance wins and is returned to all.
func (cache *FilterCache) Get(directoryPath string) *PatternFilter {
	canonicalPath := canonicalDirectoryPath(directoryPath)

	cache.mutex.RLock()
	cachedFilter, isCached := cache.filters[canonicalPath]
	cache.mutex.RUnlock()
	if isCached {
		return cachedFilter
	}

	builtFilter := cache.buildFilter(canonicalPath)

	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	if existingFilter, alreadyStored := cache.filters[canonicalPath]; alreadyStored {
		return existingFilter
	}
	cache.filters[canonicalPath] = builtFilter
	return builtFilter
}

// Clear drops every cached filter. The next Get for any directory rebuilds
// from disk.
func (cache *FilterCache) Clear() {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	cache.filters = make(map[string]*PatternFilter)
}

// buildFilter reads the directory's local ignore file and compiles a filter.
// An absent ignore file is not an error; any other read failure degrades to
// default-only filtering with a warning, never a failure of the caller.
func (cache *FilterCache) buildFilter(directoryPath string) *PatternFilter {
	ignoreFilePath := filepath.Join(directoryPath, IgnoreFileName)
	ignoreFileBytes, readError := os.ReadFile(ignoreFilePath)
	if readError != nil {
		if !os.IsNotExist(readError) {
			cache.logger.Warn(fmt.Sprintf("ignoring unreadable %s in %s: %v", IgnoreFileName, directoryPath, readError))
		}
		return NewPatternFilter("")
	}
	return NewPatternFilter(string(ignoreFileBytes))
}

// canonicalDirectoryPath normalizes a directory path into the cache key form.
func canonicalDirectoryPath(directoryPath string) string {
	absolutePath, absoluteError := filepath.Abs(directoryPath)
	if absoluteError != nil {
		return filepath.Clean(directoryPath)
	}
	return filepath.Clean(absolutePath)
}
