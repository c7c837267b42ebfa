package shortcut

import (
	"fmt"
	"strings"
)

// Accelerator is the only binding this program installs
const Accelerator = "Control+Alt+Shift+T"

// KeyCombo represents a keyboard key combination
type KeyCombo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
	Key   string // upper-case key name, e.g. "T", "F5", "SPACE"
}

// String returns the accelerator form, modifiers in Control, Alt, Shift, Super order
func (c KeyCombo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Control")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Super {
		parts = append(parts, "Super")
	}
	if c.Key != "" {
		parts = append(parts, c.Key)
	}
	return strings.Join(parts, "+")
}

// ParseAccelerator parses a combo string like "Control+Alt+Shift+T" or "ctrl+shift+f5"
func ParseAccelerator(accel string) (KeyCombo, error) {
	var kc KeyCombo
	if strings.TrimSpace(accel) == "" {
		return kc, fmt.Errorf("empty accelerator")
	}

	parts := strings.Split(accel, "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)

		switch strings.ToLower(part) {
		case "ctrl", "control", "cmdorctrl":
			kc.Ctrl = true
			continue
		case "alt", "option":
			kc.Alt = true
			continue
		case "shift":
			kc.Shift = true
			continue
		case "super", "win", "windows", "cmd", "command", "meta":
			kc.Super = true
			continue
		}

		if i != len(parts)-1 {
			return kc, fmt.Errorf("unknown modifier: %s", part)
		}
		if part == "" {
			return kc, fmt.Errorf("missing key in accelerator %q", accel)
		}
		kc.Key = strings.ToUpper(part)
	}

	if kc.Key == "" {
		return kc, fmt.Errorf("missing key in accelerator %q", accel)
	}
	if !kc.Ctrl && !kc.Alt && !kc.Shift && !kc.Super {
		return kc, fmt.Errorf("accelerator %q has no modifiers", accel)
	}

	return kc, nil
}
