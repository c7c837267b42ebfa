package platform

import (
	"fmt"
	"log/slog"
	"time"
)

// PasteInjector injects text through the clipboard and the paste chord,
// restoring the previous clipboard text afterwards
type PasteInjector struct {
	clipboard Clipboard
	paster    Paster

	settle  time.Duration // wait after setting the clipboard
	drain   time.Duration // wait for the paste to complete before restoring
	sleepFn func(time.Duration)
}

// NewPasteInjector creates a paste-based injector
func NewPasteInjector(clip Clipboard, paster Paster) *PasteInjector {
	return &PasteInjector{
		clipboard: clip,
		paster:    paster,
		settle:    50 * time.Millisecond,
		drain:     100 * time.Millisecond,
		sleepFn:   time.Sleep,
	}
}

// TypeString pastes text into the focused application
func (p *PasteInjector) TypeString(text string) error {
	// Save current clipboard content
	original, err := p.clipboard.Get()
	if err != nil {
		slog.Warn("Failed to get clipboard content, continuing anyway", "error", err)
		original = ""
	}

	if err := p.clipboard.Set(text); err != nil {
		return fmt.Errorf("failed to set clipboard: %w", err)
	}
	p.sleepFn(p.settle)

	if err := p.paster.Paste(); err != nil {
		return fmt.Errorf("failed to paste: %w", err)
	}
	p.sleepFn(p.drain)

	if original != "" {
		if err := p.clipboard.Set(original); err != nil {
			slog.Warn("Failed to restore clipboard", "error", err)
		}
	}

	return nil
}
