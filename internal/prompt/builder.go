// Package prompt assembles resolved context files and a task description
// into a single prompt string for an LLM request.
package prompt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/promptctx/promptctx/internal/contextfiles"
)

const (
	contextSectionHeader = "Context files:"
	skippedSectionHeader = "Files that could not be included:"
	fileHeaderFormat     = "### %s\n"
	skippedEntryFormat   = "- %s (%s)\n"
	codeFenceRune        = '`'
	minimumFenceLength   = 3
)

// Build renders the task followed by every successfully read context file in
// a fenced block under its path, and closes with the paths that failed to
// resolve so the model knows what is missing. Failed entries never abort the
// prompt; an empty result list yields the bare task.
func Build(task string, results []contextfiles.ContextFileResult) string {
	var buffer bytes.Buffer

	trimmedTask := strings.TrimSpace(task)
	if trimmedTask != "" {
		buffer.WriteString(trimmedTask)
		buffer.WriteString("\n\n")
	}

	var skippedResults []contextfiles.ContextFileResult
	wroteContextHeader := false
	for _, result := range results {
		if result.Error != nil {
			skippedResults = append(skippedResults, result)
			continue
		}
		if !wroteContextHeader {
			buffer.WriteString(contextSectionHeader)
			buffer.WriteString("\n\n")
			wroteContextHeader = true
		}
		buffer.WriteString(fmt.Sprintf(fileHeaderFormat, result.Path))
		writeFencedContent(&buffer, *result.Content)
		buffer.WriteString("\n")
	}

	if len(skippedResults) > 0 {
		buffer.WriteString(skippedSectionHeader)
		buffer.WriteString("\n")
		for _, skippedResult := range skippedResults {
			buffer.WriteString(fmt.Sprintf(skippedEntryFormat, skippedResult.Path, skippedResult.Error.Code))
		}
	}

	return strings.TrimRight(buffer.String(), "\n") + "\n"
}

// writeFencedContent wraps content in a backtick fence long enough that no
// backtick run inside the content can close it early.
func writeFencedContent(buffer *bytes.Buffer, content string) {
	fence := strings.Repeat(string(codeFenceRune), fenceLength(content))
	buffer.WriteString(fence)
	buffer.WriteString("\n")
	buffer.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		buffer.WriteString("\n")
	}
	buffer.WriteString(fence)
	buffer.WriteString("\n")
}

// fenceLength returns one more than the longest backtick run in content, with
// a floor of the standard three-character fence.
func fenceLength(content string) int {
	longestRun := 0
	currentRun := 0
	for _, contentRune := range content {
		if contentRune == codeFenceRune {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
			continue
		}
		currentRun = 0
	}
	if longestRun+1 > minimumFenceLength {
		return longestRun + 1
	}
	return minimumFenceLength
}
