//go:build !windows

package platform

import (
	"fmt"
	"runtime"

	"github.com/go-vgo/robotgo"
)

// RobotPaster taps the platform paste chord through robotgo
type RobotPaster struct {
	modifier string
}

// NewPaster creates a paster using Cmd+V on macOS and Ctrl+V elsewhere
func NewPaster() Paster {
	mod := "ctrl"
	if runtime.GOOS == "darwin" {
		mod = "cmd"
	}
	return &RobotPaster{modifier: mod}
}

// Paste simulates the paste chord
func (p *RobotPaster) Paste() error {
	if err := robotgo.KeyTap("v", p.modifier); err != nil {
		return fmt.Errorf("failed to tap %s+v: %w", p.modifier, err)
	}
	robotgo.MilliSleep(20)
	return nil
}
