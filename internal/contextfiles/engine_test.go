package contextfiles

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNewEngineDefaults verifies configuration defaulting.
func TestNewEngineDefaults(testingHandle *testing.T) {
	engine := NewEngine(Config{})
	if engine.maxFileSizeBytes != DefaultMaxFileSizeBytes {
		testingHandle.Fatalf("expected default size limit %d, got %d", DefaultMaxFileSizeBytes, engine.maxFileSizeBytes)
	}
	if engine.logger == nil {
		testingHandle.Fatalf("expected a non-nil logger")
	}
	if engine.filterCache == nil {
		testingHandle.Fatalf("expected an initialized filter cache")
	}
}

// TestEngineIgnoreFilterUsesCache verifies IgnoreFilter exposes the memoized
// per-directory filter.
func TestEngineIgnoreFilterUsesCache(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	engine := NewEngine(Config{})

	firstFilter := engine.IgnoreFilter(temporaryDirectory)
	secondFilter := engine.IgnoreFilter(temporaryDirectory)
	if firstFilter != secondFilter {
		testingHandle.Fatalf("expected the identical cached filter")
	}

	engine.ClearIgnoreCache()
	rebuiltFilter := engine.IgnoreFilter(temporaryDirectory)
	if rebuiltFilter == firstFilter {
		testingHandle.Fatalf("expected a fresh filter after ClearIgnoreCache")
	}
}

// TestSharedEngineAPI exercises the package-level convenience surface.
func TestSharedEngineAPI(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	filePath := filepath.Join(temporaryDirectory, "shared.txt")
	createFile(testingHandle, filePath, "shared engine")

	fileResult := ReadContextFile(filePath)
	if fileResult.Content == nil || *fileResult.Content != "shared engine" {
		testingHandle.Fatalf("expected shared engine to read the file, got %+v", fileResult)
	}

	directoryResults := ReadDirectoryContents(temporaryDirectory)
	if len(directoryResults) != 1 {
		testingHandle.Fatalf("expected one directory result, got %d", len(directoryResults))
	}

	aggregateResults := ReadContextPaths([]string{filePath})
	if len(aggregateResults) != 1 || aggregateResults[0].Content == nil {
		testingHandle.Fatalf("expected one successful aggregate result")
	}

	ClearIgnoreCache()
}

// TestResolvePath verifies absolute pass-through and relative resolution.
func TestResolvePath(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	engine := NewEngine(Config{WorkingDirectory: workingDirectory})

	absoluteInput := filepath.Join(workingDirectory, "abs.txt")
	if resolved := engine.resolvePath(absoluteInput); resolved != absoluteInput {
		testingHandle.Fatalf("expected absolute path pass-through, got %s", resolved)
	}

	if resolved := engine.resolvePath("rel.txt"); resolved != filepath.Join(workingDirectory, "rel.txt") {
		testingHandle.Fatalf("unexpected relative resolution %s", resolved)
	}

	processEngine := NewEngine(Config{})
	processWorkingDirectory, _ := os.Getwd()
	if resolved := processEngine.resolvePath("rel.txt"); resolved != filepath.Join(processWorkingDirectory, "rel.txt") {
		testingHandle.Fatalf("expected resolution against the process working directory, got %s", resolved)
	}
}
