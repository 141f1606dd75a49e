package contextfiles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createFile writes content at filePath, failing the test on error.
func createFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	writeError := os.WriteFile(filePath, []byte(content), 0o644)
	if writeError != nil {
		testingHandle.Fatalf("failed to write file %s: %v", filePath, writeError)
	}
}

// createSparseFile creates a file of exactly sizeBytes without writing data.
func createSparseFile(testingHandle *testing.T, filePath string, sizeBytes int64) {
	testingHandle.Helper()
	fileHandle, createError := os.Create(filePath)
	if createError != nil {
		testingHandle.Fatalf("failed to create file %s: %v", filePath, createError)
	}
	if truncateError := fileHandle.Truncate(sizeBytes); truncateError != nil {
		testingHandle.Fatalf("failed to size file %s: %v", filePath, truncateError)
	}
	if closeError := fileHandle.Close(); closeError != nil {
		testingHandle.Fatalf("failed to close file %s: %v", filePath, closeError)
	}
}

// assertExactlyOneOutcome fails unless exactly one of Content and Error is set.
func assertExactlyOneOutcome(testingHandle *testing.T, result ContextFileResult) {
	testingHandle.Helper()
	if (result.Content == nil) == (result.Error == nil) {
		testingHandle.Fatalf("result for %s must carry exactly one of content and error", result.Path)
	}
}

// TestReadContextFileSuccess verifies content is returned as read and the
// original path string is echoed.
func TestReadContextFileSuccess(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	filePath := filepath.Join(temporaryDirectory, "main.go")
	createFile(testingHandle, filePath, "package main\n")

	engine := NewEngine(Config{})
	result := engine.ReadContextFile(filePath)

	assertExactlyOneOutcome(testingHandle, result)
	if result.Error != nil {
		testingHandle.Fatalf("unexpected error: %+v", result.Error)
	}
	if result.Path != filePath {
		testingHandle.Fatalf("expected path %s, got %s", filePath, result.Path)
	}
	if *result.Content != "package main\n" {
		testingHandle.Fatalf("unexpected content %q", *result.Content)
	}
}

// TestReadContextFileEchoesOriginalRelativePath verifies relative inputs are
// resolved against the working directory but echoed unresolved.
func TestReadContextFileEchoesOriginalRelativePath(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	createFile(testingHandle, filepath.Join(temporaryDirectory, "notes.txt"), "hello")

	engine := NewEngine(Config{WorkingDirectory: temporaryDirectory})
	result := engine.ReadContextFile("notes.txt")

	assertExactlyOneOutcome(testingHandle, result)
	if result.Error != nil {
		testingHandle.Fatalf("unexpected error: %+v", result.Error)
	}
	if result.Path != "notes.txt" {
		testingHandle.Fatalf("expected the original path string, got %s", result.Path)
	}
}

// TestReadContextFileMissing verifies the ENOENT classification and that the
// message embeds the offending path.
func TestReadContextFileMissing(testingHandle *testing.T) {
	missingPath := filepath.Join(testingHandle.TempDir(), "missing.txt")

	engine := NewEngine(Config{})
	result := engine.ReadContextFile(missingPath)

	assertExactlyOneOutcome(testingHandle, result)
	if result.Error == nil || result.Error.Code != CodeNotFound {
		testingHandle.Fatalf("expected %s, got %+v", CodeNotFound, result.Error)
	}
	if !strings.Contains(result.Error.Message, missingPath) {
		testingHandle.Fatalf("expected message to contain %s, got %q", missingPath, result.Error.Message)
	}
}

// TestReadContextFileOnDirectory verifies the NOT_FILE classification.
func TestReadContextFileOnDirectory(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()

	engine := NewEngine(Config{})
	result := engine.ReadContextFile(temporaryDirectory)

	assertExactlyOneOutcome(testingHandle, result)
	if result.Error == nil || result.Error.Code != CodeNotFile {
		testingHandle.Fatalf("expected %s, got %+v", CodeNotFile, result.Error)
	}
}

// TestReadContextFilePermissionDenied verifies the EACCES classification for
// an unreadable file.
func TestReadContextFilePermissionDenied(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission checks do not apply to root")
	}
	temporaryDirectory := testingHandle.TempDir()
	filePath := filepath.Join(temporaryDirectory, "secret.txt")
	createFile(testingHandle, filePath, "classified")
	if chmodError := os.Chmod(filePath, 0o000); chmodError != nil {
		testingHandle.Fatalf("failed to chmod %s: %v", filePath, chmodError)
	}

	engine := NewEngine(Config{})
	result := engine.ReadContextFile(filePath)

	assertExactlyOneOutcome(testingHandle, result)
	if result.Error == nil || result.Error.Code != CodePermissionDenied {
		testingHandle.Fatalf("expected %s, got %+v", CodePermissionDenied, result.Error)
	}
}

// TestReadContextFileSizeGate verifies the size boundary is inclusive at the
// limit and that oversized files report both sizes in whole megabytes.
func TestReadContextFileSizeGate(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()

	exactPath := filepath.Join(temporaryDirectory, "exact.bin")
	createFile(testingHandle, exactPath, strings.Repeat("a", 4096))

	overPath := filepath.Join(temporaryDirectory, "over.bin")
	createFile(testingHandle, overPath, strings.Repeat("a", 4097))

	engine := NewEngine(Config{MaxFileSizeBytes: 4096})

	exactResult := engine.ReadContextFile(exactPath)
	assertExactlyOneOutcome(testingHandle, exactResult)
	if exactResult.Error != nil {
		testingHandle.Fatalf("expected a file at exactly the limit to succeed, got %+v", exactResult.Error)
	}

	overResult := engine.ReadContextFile(overPath)
	assertExactlyOneOutcome(testingHandle, overResult)
	if overResult.Error == nil || overResult.Error.Code != CodeFileTooLarge {
		testingHandle.Fatalf("expected %s, got %+v", CodeFileTooLarge, overResult.Error)
	}
}

// TestReadContextFileTooLargeMessage verifies the oversized message contains
// both the observed and the configured size rounded to whole megabytes.
func TestReadContextFileTooLargeMessage(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	largePath := filepath.Join(temporaryDirectory, "dataset.csv")
	createSparseFile(testingHandle, largePath, 15*1024*1024)

	engine := NewEngine(Config{})
	result := engine.ReadContextFile(largePath)

	assertExactlyOneOutcome(testingHandle, result)
	if result.Error == nil || result.Error.Code != CodeFileTooLarge {
		testingHandle.Fatalf("expected %s, got %+v", CodeFileTooLarge, result.Error)
	}
	for _, expectedFragment := range []string{largePath, "15MB", "10MB"} {
		if !strings.Contains(result.Error.Message, expectedFragment) {
			testingHandle.Fatalf("expected message to contain %q, got %q", expectedFragment, result.Error.Message)
		}
	}
}

// TestReadContextFileBinary verifies binary content is discarded with the
// BINARY_FILE classification.
func TestReadContextFileBinary(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	binaryPath := filepath.Join(temporaryDirectory, "image.png")
	createFile(testingHandle, binaryPath, "\x89PNG\x00\x01\x02")

	engine := NewEngine(Config{})
	result := engine.ReadContextFile(binaryPath)

	assertExactlyOneOutcome(testingHandle, result)
	if result.Error == nil || result.Error.Code != CodeBinaryFile {
		testingHandle.Fatalf("expected %s, got %+v", CodeBinaryFile, result.Error)
	}
	if result.Content != nil {
		testingHandle.Fatalf("expected binary content to be discarded")
	}
}

// TestWholeMegabytes verifies size rounding used in error messages.
func TestWholeMegabytes(testingHandle *testing.T) {
	testCases := []struct {
		name      string
		byteCount int64
		expected  int64
	}{
		{name: "Zero", byteCount: 0, expected: 0},
		{name: "TenMebibytes", byteCount: 10 * 1024 * 1024, expected: 10},
		{name: "FifteenMebibytes", byteCount: 15 * 1024 * 1024, expected: 15},
		{name: "RoundsDown", byteCount: 10*1024*1024 + 1, expected: 10},
		{name: "RoundsUp", byteCount: 10*1024*1024 + 512*1024, expected: 11},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			rounded := wholeMegabytes(testCase.byteCount)
			if rounded != testCase.expected {
				testingHandle.Fatalf("wholeMegabytes(%d) = %d, expected %d", testCase.byteCount, rounded, testCase.expected)
			}
		})
	}
}

// TestClassifyRecovered verifies the panic-value mapping behind the UNKNOWN
// classification.
func TestClassifyRecovered(testingHandle *testing.T) {
	errorResult := classifyRecovered("some/path", os.ErrClosed)
	if errorResult.Error == nil || errorResult.Error.Code != CodeReadError {
		testingHandle.Fatalf("expected recovered errors to classify as %s, got %+v", CodeReadError, errorResult.Error)
	}

	valueResult := classifyRecovered("some/path", "not an error")
	if valueResult.Error == nil || valueResult.Error.Code != CodeUnknown {
		testingHandle.Fatalf("expected recovered non-errors to classify as %s, got %+v", CodeUnknown, valueResult.Error)
	}
}
