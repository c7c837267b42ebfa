package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	text    string
	getErr  error
	history []string
}

func (c *memClipboard) Get() (string, error) {
	return c.text, c.getErr
}

func (c *memClipboard) Set(text string) error {
	c.text = text
	c.history = append(c.history, text)
	return nil
}

type recordingPaster struct {
	clip   *memClipboard
	pasted []string
	err    error
}

func (p *recordingPaster) Paste() error {
	if p.err != nil {
		return p.err
	}
	p.pasted = append(p.pasted, p.clip.text)
	return nil
}

func newTestPasteInjector(clip *memClipboard, paster Paster) *PasteInjector {
	p := NewPasteInjector(clip, paster)
	p.sleepFn = func(time.Duration) {}
	return p
}

func TestPasteInjector_PastesAndRestores(t *testing.T) {
	clip := &memClipboard{text: "user data"}
	paster := &recordingPaster{clip: clip}

	require.NoError(t, newTestPasteInjector(clip, paster).TypeString("2023-06-01T12:34:56.789Z"))

	assert.Equal(t, []string{"2023-06-01T12:34:56.789Z"}, paster.pasted)
	assert.Equal(t, "user data", clip.text)
	assert.Equal(t, []string{"2023-06-01T12:34:56.789Z", "user data"}, clip.history)
}

func TestPasteInjector_EmptyClipboardNotRestored(t *testing.T) {
	clip := &memClipboard{getErr: errors.New("clipboard locked")}
	paster := &recordingPaster{clip: clip}

	require.NoError(t, newTestPasteInjector(clip, paster).TypeString("x"))

	assert.Equal(t, []string{"x"}, clip.history)
}

func TestPasteInjector_PasteFailure(t *testing.T) {
	clip := &memClipboard{text: "keep"}
	paster := &recordingPaster{clip: clip, err: errors.New("SendInput blocked")}

	err := newTestPasteInjector(clip, paster).TypeString("x")
	require.Error(t, err)
	assert.ErrorIs(t, err, paster.err)
}

func TestNewInjector_UnknownMethod(t *testing.T) {
	_, err := NewInjector("telepathy")
	assert.Error(t, err)
}
