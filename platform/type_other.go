//go:build !windows

package platform

import (
	"github.com/go-vgo/robotgo"
)

// RobotTyper types text through robotgo (CGEvent on macOS, XTest on Linux)
type RobotTyper struct{}

// NewKeyboardTyper creates a new robotgo typer
func NewKeyboardTyper() *RobotTyper {
	return &RobotTyper{}
}

// TypeString types text character by character
func (t *RobotTyper) TypeString(text string) error {
	robotgo.TypeStr(text)
	return nil
}
