package contextfiles

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// DefaultMaxFileSizeBytes is the file size limit applied when no explicit
// limit is configured.
const DefaultMaxFileSizeBytes = 10 * 1024 * 1024

// Config carries the externally supplied parameters of an Engine.
type Config struct {
	// WorkingDirectory resolves relative input paths. Empty means the
	// process working directory at call time.
	WorkingDirectory string
	// MaxFileSizeBytes caps readable file size. Zero or negative selects
	// DefaultMaxFileSizeBytes.
	MaxFileSizeBytes int64
	// Logger receives warning-level diagnostics (ignore-file degradation,
	// binary skips). Nil disables them.
	Logger *zap.Logger
}

// Engine is the context resolution engine: it reads single files, walks
// directories under ignore rules, and aggregates mixed path lists into flat
// result lists. An Engine is safe for concurrent use.
type Engine struct {
	workingDirectory string
	maxFileSizeBytes int64
	filterCache      *FilterCache
	logger           *zap.Logger
}

// NewEngine constructs an Engine with its own filter cache.
func NewEngine(configuration Config) *Engine {
	maxFileSizeBytes := configuration.MaxFileSizeBytes
	if maxFileSizeBytes <= 0 {
		maxFileSizeBytes = DefaultMaxFileSizeBytes
	}
	logger := configuration.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		workingDirectory: configuration.WorkingDirectory,
		maxFileSizeBytes: maxFileSizeBytes,
		filterCache:      NewFilterCache(logger),
		logger:           logger,
	}
}

// IgnoreFilter returns the cached (building if needed) filter for a directory.
func (engine *Engine) IgnoreFilter(directoryPath string) *PatternFilter {
	return engine.filterCache.Get(directoryPath)
}

// ClearIgnoreCache drops every memoized ignore filter so subsequent reads
// observe ignore-file edits.
func (engine *Engine) ClearIgnoreCache() {
	engine.filterCache.Clear()
}

// resolvePath resolves a relative input against the engine's working
// directory. Absolute paths pass through unchanged.
func (engine *Engine) resolvePath(inputPath string) string {
	if filepath.IsAbs(inputPath) {
		return inputPath
	}
	if engine.workingDirectory == "" {
		absolutePath, absoluteError := filepath.Abs(inputPath)
		if absoluteError != nil {
			return inputPath
		}
		return absolutePath
	}
	return filepath.Join(engine.workingDirectory, inputPath)
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// sharedEngine returns the process-wide engine backing the package-level API.
func sharedEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(Config{})
	})
	return defaultEngine
}

// ReadContextFile reads a single file through the shared engine.
func ReadContextFile(path string) ContextFileResult {
	return sharedEngine().ReadContextFile(path)
}

// ReadDirectoryContents walks a directory through the shared engine.
func ReadDirectoryContents(directoryPath string) []ContextFileResult {
	return sharedEngine().ReadDirectoryContents(directoryPath)
}

// ReadContextPaths aggregates a mixed list of paths through the shared engine.
func ReadContextPaths(paths []string) []ContextFileResult {
	return sharedEngine().ReadContextPaths(paths)
}

// ClearIgnoreCache resets the shared engine's ignore filter cache.
func ClearIgnoreCache() {
	sharedEngine().ClearIgnoreCache()
}
