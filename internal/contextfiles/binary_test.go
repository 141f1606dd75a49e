package contextfiles

import (
	"strings"
	"testing"
)

// TestIsBinaryContent verifies the sampling heuristic including its exact
// threshold boundary and window bound.
func TestIsBinaryContent(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected bool
	}{
		{
			name:     "EmptyContent",
			content:  "",
			expected: false,
		},
		{
			name:     "PlainText",
			content:  "package main\n\nfunc main() {}\n",
			expected: false,
		},
		{
			name:     "NullCharacterWithinWindow",
			content:  "hello\x00world",
			expected: true,
		},
		{
			name:     "NullCharacterAtWindowEnd",
			content:  strings.Repeat("a", 4095) + "\x00",
			expected: true,
		},
		{
			name:     "NullCharacterBeyondWindow",
			content:  strings.Repeat("a", 4096) + "\x00" + strings.Repeat("b", 100),
			expected: false,
		},
		{
			name:     "ControlCharactersAtExactThreshold",
			content:  strings.Repeat("\x01", 100) + strings.Repeat("a", 900),
			expected: false,
		},
		{
			name:     "ControlCharactersJustOverThreshold",
			content:  strings.Repeat("\x01", 101) + strings.Repeat("a", 899),
			expected: true,
		},
		{
			name:     "TabsNewlinesAndCarriageReturnsAreText",
			content:  strings.Repeat("\t\n\r", 400),
			expected: false,
		},
		{
			name:     "DeleteCharacterCountsAsControl",
			content:  strings.Repeat("\x7f", 200) + strings.Repeat("a", 800),
			expected: true,
		},
		{
			name:     "BinaryTailBeyondWindowIsIgnored",
			content:  strings.Repeat("a", 4096) + strings.Repeat("\x01", 2000),
			expected: false,
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			classified := IsBinaryContent(testCase.content)
			if classified != testCase.expected {
				testingHandle.Fatalf("IsBinaryContent(%s) = %v, expected %v", testCase.name, classified, testCase.expected)
			}
		})
	}
}
