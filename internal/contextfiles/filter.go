package contextfiles

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreFileName is the per-directory ignore file consulted during traversal.
const IgnoreFileName = ".gitignore"

// defaultIgnoreNames are always merged into every filter, regardless of the
// directory's local ignore rules. They name directories that never belong in
// prompt context.
var defaultIgnoreNames = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"coverage",
	".cache",
	".next",
	".nuxt",
	".output",
	".vscode",
	".idea",
}

// defaultIgnoreSet indexes defaultIgnoreNames for the traversal short-circuit
// that prevents descending into excluded trees.
var defaultIgnoreSet = buildDefaultIgnoreSet()

func buildDefaultIgnoreSet() map[string]struct{} {
	ignoreSet := make(map[string]struct{}, len(defaultIgnoreNames))
	for _, ignoreName := range defaultIgnoreNames {
		ignoreSet[ignoreName] = struct{}{}
	}
	return ignoreSet
}

// PatternFilter answers whether a path relative to its owning directory is
// ignored. Rules follow gitignore precedence: later rules win, and a leading
// "!" re-includes a previously excluded path. A filter is immutable after
// construction.
type PatternFilter struct {
	matcher gitignore.Matcher
}

// NewPatternFilter compiles the default ignore set plus the provided local
// ignore-file text into a filter. Blank lines and comment lines are dropped.
// Construction never fails; empty or absent local rules yield a default-only
// filter.
func NewPatternFilter(localRules string) *PatternFilter {
	patterns := make([]gitignore.Pattern, 0, len(defaultIgnoreNames))
	for _, ignoreName := range defaultIgnoreNames {
		patterns = append(patterns, gitignore.ParsePattern(ignoreName, nil))
	}

	for _, ruleLine := range strings.Split(localRules, "\n") {
		trimmedLine := strings.TrimSpace(ruleLine)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(trimmedLine, nil))
	}

	return &PatternFilter{matcher: gitignore.NewMatcher(patterns)}
}

// Ignored reports whether the path, relative to the directory that owns this
// filter, matches an ignore rule. Filters never receive absolute paths.
func (filter *PatternFilter) Ignored(relativePath string, isDirectory bool) bool {
	segments := splitPathSegments(relativePath)
	if len(segments) == 0 {
		return false
	}
	return filter.matcher.Match(segments, isDirectory)
}

// splitPathSegments normalizes separators and splits a relative path into the
// segment form the gitignore matcher expects, dropping empty and "." parts.
func splitPathSegments(relativePath string) []string {
	normalizedPath := filepath.ToSlash(relativePath)
	rawSegments := strings.Split(normalizedPath, "/")
	segments := make([]string, 0, len(rawSegments))
	for _, segment := range rawSegments {
		if segment == "" || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}
