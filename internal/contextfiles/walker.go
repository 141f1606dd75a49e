package contextfiles

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadDirectoryContents recursively collects results for every non-ignored
// file beneath the directory. Each directory is filtered by its own local
// ignore file plus the global defaults; ancestor ignore files do not cascade
// into subdirectories. Ignored entries produce no result at all. The only
// directory-level result is produced when the directory itself cannot be
// probed or listed.
func (engine *Engine) ReadDirectoryContents(directoryPath string) []ContextFileResult {
	resolvedPath := engine.resolvePath(directoryPath)

	directoryInfo, statError := os.Stat(resolvedPath)
	if statError != nil {
		return []ContextFileResult{classifyAccessError(directoryPath, statError)}
	}
	if !directoryInfo.IsDir() {
		return []ContextFileResult{failureResult(directoryPath, CodeReadError, fmt.Sprintf(messageListErrorFormat, directoryPath, "not a directory"))}
	}

	return engine.walkDirectory(resolvedPath)
}

// walkDirectory lists one directory, applies that directory's filter, and
// recurses into subdirectories. directoryPath is always absolute here.
func (engine *Engine) walkDirectory(directoryPath string) []ContextFileResult {
	directoryEntries, listError := os.ReadDir(directoryPath)
	if listError != nil {
		return []ContextFileResult{failureResult(directoryPath, CodeReadError, fmt.Sprintf(messageListErrorFormat, directoryPath, listError))}
	}

	directoryFilter := engine.filterCache.Get(directoryPath)

	results := make([]ContextFileResult, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()

		// The filter is queried with the path relative to this directory,
		// which for a direct child is just its name.
		if directoryFilter.Ignored(entryName, directoryEntry.IsDir()) {
			continue
		}

		if directoryEntry.IsDir() {
			// Default-excluded trees are skipped before listing their
			// contents, bounding cost on directories like node_modules.
			if _, isDefaultIgnored := defaultIgnoreSet[entryName]; isDefaultIgnored {
				continue
			}
			results = append(results, engine.walkDirectory(filepath.Join(directoryPath, entryName))...)
			continue
		}

		results = append(results, engine.ReadContextFile(filepath.Join(directoryPath, entryName)))
	}

	return results
}
