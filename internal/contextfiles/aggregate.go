package contextfiles

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentInputs bounds how many top-level inputs are resolved at once.
const maxConcurrentInputs = 8

// ReadContextPaths resolves an ordered list of file, directory, or invalid
// inputs into one flat result list. Results appear in input order at the top
// level: a file contributes exactly one result, a directory zero or more, an
// inaccessible or invalid input exactly one error result. Inputs are fully
// isolated from each other; independent inputs are processed concurrently.
func (engine *Engine) ReadContextPaths(paths []string) []ContextFileResult {
	if len(paths) == 0 {
		return []ContextFileResult{}
	}

	resultsPerInput := make([][]ContextFileResult, len(paths))
	var group errgroup.Group
	group.SetLimit(maxConcurrentInputs)

	for pathIndex, inputPath := range paths {
		pathIndex, inputPath := pathIndex, inputPath
		group.Go(func() error {
			resultsPerInput[pathIndex] = engine.readOneInput(inputPath)
			return nil
		})
	}
	// Workers never return errors; failures are carried as result values.
	_ = group.Wait()

	flattenedResults := make([]ContextFileResult, 0, len(paths))
	for _, inputResults := range resultsPerInput {
		flattenedResults = append(flattenedResults, inputResults...)
	}
	return flattenedResults
}

// readOneInput classifies a single input path and dispatches it to the file
// pipeline or the directory walker. The original path string is preserved in
// any error result it produces directly.
func (engine *Engine) readOneInput(inputPath string) []ContextFileResult {
	resolvedPath := engine.resolvePath(inputPath)

	pathInfo, statError := os.Stat(resolvedPath)
	if statError != nil {
		return []ContextFileResult{classifyAccessError(inputPath, statError)}
	}

	switch {
	case pathInfo.Mode().IsRegular():
		return []ContextFileResult{engine.ReadContextFile(inputPath)}
	case pathInfo.IsDir():
		return engine.walkDirectory(resolvedPath)
	default:
		return []ContextFileResult{failureResult(inputPath, CodeInvalidPathType, fmt.Sprintf(messageInvalidPathTypeFormat, inputPath))}
	}
}
