//go:build windows

package platform

import (
	"time"
)

const (
	vkControl = 0x11
	vkV       = 0x56
)

// WindowsPaster implements the Paster interface for Windows
type WindowsPaster struct{}

// NewPaster creates a new Windows paster instance
func NewPaster() Paster {
	return &WindowsPaster{}
}

// Paste simulates Ctrl+V keypress with scan codes for better compatibility
func (p *WindowsPaster) Paste() error {
	// Scan codes keep elevated applications happy
	ctrlScan, _, _ := mapVirtualKeyW.Call(vkControl, mapvkVkToVsc)
	vScan, _, _ := mapVirtualKeyW.Call(vkV, mapvkVkToVsc)

	key := func(vk uint16, scan uintptr, flags uint32) input {
		return input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wVk: vk, wScan: uint16(scan), dwFlags: flags},
		}
	}

	inputs := []input{
		key(vkControl, ctrlScan, 0),
		key(vkV, vScan, 0),
		key(vkV, vScan, keyeventfKeyup),
		key(vkControl, ctrlScan, keyeventfKeyup),
	}

	if err := sendInput(inputs); err != nil {
		return err
	}

	// Small delay to ensure input is processed
	time.Sleep(20 * time.Millisecond)
	return nil
}
