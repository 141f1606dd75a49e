// Package clipboard places rendered command output on the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier places textual content on the system clipboard.
type Copier interface {
	Copy(content string) error
}

// SystemClipboard is the Copier backed by the host clipboard.
type SystemClipboard struct{}

// NewService returns the host clipboard service.
func NewService() SystemClipboard {
	return SystemClipboard{}
}

// Copy places content on the system clipboard. Headless environments without
// a clipboard provider report the failure instead of dropping the content
// silently.
func (SystemClipboard) Copy(content string) error {
	if writeError := clipboard.WriteAll(content); writeError != nil {
		return fmt.Errorf("copy to clipboard: %w", writeError)
	}
	return nil
}

var _ Copier = SystemClipboard{}
