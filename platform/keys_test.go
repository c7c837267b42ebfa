package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/hotkey"

	"markestedt/textshortcut/shortcut"
)

func TestHotkeyArgs_Accelerator(t *testing.T) {
	combo, err := shortcut.ParseAccelerator(shortcut.Accelerator)
	require.NoError(t, err)

	mods, key, err := hotkeyArgs(combo)
	require.NoError(t, err)

	assert.Equal(t, hotkey.KeyT, key)
	assert.Equal(t, []hotkey.Modifier{modCtrl, modAlt, modShift}, mods)
}

func TestHotkeyArgs_UnknownKey(t *testing.T) {
	_, _, err := hotkeyArgs(shortcut.KeyCombo{Ctrl: true, Key: "PRINTSCREEN"})
	assert.Error(t, err)
}

func TestRegistrar_UnregisterUnbound(t *testing.T) {
	r := NewRegistrar()
	combo := shortcut.KeyCombo{Ctrl: true, Key: "T"}

	assert.False(t, r.IsRegistered(combo))
	assert.NoError(t, r.Unregister(combo))
}
