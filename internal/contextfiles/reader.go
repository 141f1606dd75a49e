package contextfiles

import (
	"fmt"
	"os"
)

// ReadContextFile runs the single-file pipeline: existence and permission
// probe, type and size check, content read, binary check. Every failure is
// terminal and reported once; nothing is retried. The returned Path always
// echoes the original input string, never the resolved one.
func (engine *Engine) ReadContextFile(path string) (result ContextFileResult) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = classifyRecovered(path, recovered)
		}
	}()

	resolvedPath := engine.resolvePath(path)

	fileInfo, statError := os.Stat(resolvedPath)
	if statError != nil {
		return classifyAccessError(path, statError)
	}

	if fileInfo.IsDir() || !fileInfo.Mode().IsRegular() {
		return failureResult(path, CodeNotFile, fmt.Sprintf(messageNotFileFormat, path))
	}

	// The size gate precedes the content read to bound memory use.
	if fileInfo.Size() > engine.maxFileSizeBytes {
		message := fmt.Sprintf(messageFileTooLargeFormat, path, wholeMegabytes(fileInfo.Size()), wholeMegabytes(engine.maxFileSizeBytes))
		return failureResult(path, CodeFileTooLarge, message)
	}

	contentBytes, readError := os.ReadFile(resolvedPath)
	if readError != nil {
		return classifyAccessError(path, readError)
	}

	content := string(contentBytes)
	if IsBinaryContent(content) {
		engine.logger.Warn(fmt.Sprintf(messageBinaryFileFormat, path))
		return failureResult(path, CodeBinaryFile, fmt.Sprintf(messageBinaryFileFormat, path))
	}

	return successResult(path, content)
}
