//go:build linux

package platform

import "golang.design/x/hotkey"

// X11 maps Alt to Mod1 and Super to Mod4 on common keyboard layouts
const (
	modCtrl  = hotkey.ModCtrl
	modAlt   = hotkey.Mod1
	modShift = hotkey.ModShift
	modSuper = hotkey.Mod4
)
