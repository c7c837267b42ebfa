// Package platform implements the OS collaborators of the shortcut package:
// global hotkey registration and text injection into the focused window.
package platform

import (
	"fmt"

	"markestedt/textshortcut/shortcut"
)

// Clipboard provides clipboard access
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Paster simulates the paste chord in the focused application
type Paster interface {
	Paste() error
}

// Injection methods accepted by NewInjector
const (
	MethodType  = "type"
	MethodPaste = "paste"
)

// NewInjector returns the injector for the configured method
func NewInjector(method string) (shortcut.Injector, error) {
	switch method {
	case MethodType, "":
		return NewKeyboardTyper(), nil
	case MethodPaste:
		return NewPasteInjector(NewClipboard(), NewPaster()), nil
	default:
		return nil, fmt.Errorf("unknown injection method: %s", method)
	}
}
