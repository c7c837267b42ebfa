//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// WindowsTyper types text with Unicode SendInput events, independent of the
// active keyboard layout
type WindowsTyper struct{}

// NewKeyboardTyper creates a new Windows typer
func NewKeyboardTyper() *WindowsTyper {
	return &WindowsTyper{}
}

// TypeString sends a key down and key up event per UTF-16 code unit
func (t *WindowsTyper) TypeString(text string) error {
	units, err := windows.UTF16FromString(text)
	if err != nil {
		return fmt.Errorf("UTF16 conversion failed: %w", err)
	}
	units = units[:len(units)-1] // drop the NUL terminator

	inputs := make([]input, 0, len(units)*2)
	for _, u := range units {
		inputs = append(inputs,
			input{
				inputType: inputKeyboard,
				ki:        keyboardInput{wScan: u, dwFlags: keyeventfUnicode},
			},
			input{
				inputType: inputKeyboard,
				ki:        keyboardInput{wScan: u, dwFlags: keyeventfUnicode | keyeventfKeyup},
			},
		)
	}

	return sendInput(inputs)
}
