// Package output renders resolved context results for the console.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/promptctx/promptctx/internal/contextfiles"
	"github.com/promptctx/promptctx/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	separatorLine = "----------------------------------------"

	errorEntryFormat   = "[%s] %s\n"
	fileHeaderFormat   = "File: %s\n"
	summaryLineFormat  = "Files: %d ok, %d failed, %s total"
	summaryTokenFormat = ", %d tokens (%s)"

	// FormatRaw renders plain text blocks per file.
	FormatRaw = "raw"
	// FormatJSON renders an indented JSON document.
	FormatJSON = "json"
)

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatRaw, FormatJSON:
		return true
	default:
		return false
	}
}

// Summary captures aggregate information about resolved context files.
type Summary struct {
	TotalFiles  int    `json:"totalFiles"`
	FailedFiles int    `json:"failedFiles"`
	TotalSize   string `json:"totalSize"`
	TotalTokens int    `json:"totalTokens,omitempty"`
	Model       string `json:"model,omitempty"`
}

// BuildSummary aggregates counts and sizes across results. Token totals are
// filled in by the caller when token counting is enabled.
func BuildSummary(results []contextfiles.ContextFileResult) Summary {
	summary := Summary{}
	var totalSizeBytes int64
	for _, result := range results {
		if result.Error != nil {
			summary.FailedFiles++
			continue
		}
		summary.TotalFiles++
		totalSizeBytes += int64(len(*result.Content))
	}
	summary.TotalSize = utils.FormatFileSize(totalSizeBytes)
	return summary
}

// RenderRaw returns results as plain text: each successful file under a path
// header, failures listed with their error class.
func RenderRaw(results []contextfiles.ContextFileResult, summary *Summary) string {
	var buffer bytes.Buffer

	for _, result := range results {
		if result.Error != nil {
			buffer.WriteString(fmt.Sprintf(errorEntryFormat, result.Error.Code, result.Error.Message))
			continue
		}
		buffer.WriteString(fmt.Sprintf(fileHeaderFormat, result.Path))
		buffer.WriteString(separatorLine + "\n")
		buffer.WriteString(*result.Content)
		if len(*result.Content) > 0 && !bytes.HasSuffix([]byte(*result.Content), []byte("\n")) {
			buffer.WriteString("\n")
		}
		buffer.WriteString(separatorLine + "\n\n")
	}

	if summary != nil {
		buffer.WriteString(fmt.Sprintf(summaryLineFormat, summary.TotalFiles, summary.FailedFiles, summary.TotalSize))
		if summary.TotalTokens > 0 {
			buffer.WriteString(fmt.Sprintf(summaryTokenFormat, summary.TotalTokens, summary.Model))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// jsonDocument is the top-level shape of the JSON rendering.
type jsonDocument struct {
	Files   []contextfiles.ContextFileResult `json:"files"`
	Summary *Summary                         `json:"summary,omitempty"`
}

// RenderJSON returns results as an indented JSON document.
func RenderJSON(results []contextfiles.ContextFileResult, summary *Summary) (string, error) {
	document := jsonDocument{Files: results, Summary: summary}
	encoded, jsonEncodeError := json.MarshalIndent(document, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded), nil
}
