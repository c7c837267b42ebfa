package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard implements Clipboard with github.com/atotto/clipboard
type SystemClipboard struct{}

// NewClipboard creates a new system clipboard instance
func NewClipboard() Clipboard {
	return &SystemClipboard{}
}

// Get retrieves text from the clipboard
func (c *SystemClipboard) Get() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}

// Set replaces the clipboard text
func (c *SystemClipboard) Set(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
