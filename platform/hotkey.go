package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"

	"markestedt/textshortcut/shortcut"
)

type binding struct {
	hk   *hotkey.Hotkey
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (b *binding) stop() {
	b.once.Do(func() { close(b.done) })
	b.wg.Wait()
}

// GlobalRegistrar implements shortcut.Registrar on top of golang.design/x/hotkey.
// On macOS the caller must run an event loop on the main thread
// (mainthread.Init or the systray loop).
type GlobalRegistrar struct {
	mu       sync.Mutex
	bindings map[string]*binding
}

// NewRegistrar creates a registrar with no bindings
func NewRegistrar() *GlobalRegistrar {
	return &GlobalRegistrar{bindings: make(map[string]*binding)}
}

// Register binds combo system-wide. The callback runs on the listener
// goroutine once per press, after the key is released so the injected
// keystrokes are not combined with the trigger key.
func (r *GlobalRegistrar) Register(combo shortcut.KeyCombo, callback func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := combo.String()
	if _, ok := r.bindings[name]; ok {
		return nil
	}

	mods, key, err := hotkeyArgs(combo)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register %s: %w", name, err)
	}

	b := &binding{hk: hk, done: make(chan struct{})}
	b.wg.Add(1)
	go r.listen(b, name, callback)

	r.bindings[name] = b
	return nil
}

func (r *GlobalRegistrar) listen(b *binding, name string, callback func()) {
	defer b.wg.Done()

	keyup := b.hk.Keyup()
	for {
		select {
		case <-b.done:
			return
		case _, ok := <-keyup:
			if !ok {
				return
			}
			slog.Debug("Hotkey released", "accelerator", name)
			callback()
		}
	}
}

// IsRegistered reports whether combo is currently bound by this registrar
func (r *GlobalRegistrar) IsRegistered(combo shortcut.KeyCombo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.bindings[combo.String()]
	return ok
}

// Unregister removes the binding and waits for its listener to exit.
// Unregistering an unbound combo is a no-op.
func (r *GlobalRegistrar) Unregister(combo shortcut.KeyCombo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := combo.String()
	b, ok := r.bindings[name]
	if !ok {
		return nil
	}

	b.stop()
	if err := b.hk.Unregister(); err != nil {
		return fmt.Errorf("failed to unregister %s: %w", name, err)
	}

	delete(r.bindings, name)
	return nil
}
