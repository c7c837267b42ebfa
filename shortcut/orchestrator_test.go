package shortcut

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistrar records bindings in memory. The press helper plays the OS.
type fakeRegistrar struct {
	mu            sync.Mutex
	bindings      map[string]func()
	registerCalls int
	registerErr   error
	dropOnBind    bool // Register "succeeds" without binding
	stickyUnbind  bool // Unregister "succeeds" without unbinding
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{bindings: make(map[string]func())}
}

func (r *fakeRegistrar) Register(combo KeyCombo, callback func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerCalls++
	if r.registerErr != nil {
		return r.registerErr
	}
	if r.dropOnBind {
		return nil
	}
	if _, ok := r.bindings[combo.String()]; ok {
		return nil
	}
	r.bindings[combo.String()] = callback
	return nil
}

func (r *fakeRegistrar) IsRegistered(combo KeyCombo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.bindings[combo.String()]
	return ok
}

func (r *fakeRegistrar) Unregister(combo KeyCombo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stickyUnbind {
		return nil
	}
	delete(r.bindings, combo.String())
	return nil
}

func (r *fakeRegistrar) press(t *testing.T, accel string) {
	t.Helper()
	r.mu.Lock()
	cb, ok := r.bindings[accel]
	r.mu.Unlock()
	require.True(t, ok, "%s is not bound", accel)
	cb()
}

type fakeInjector struct {
	mu    sync.Mutex
	typed []string
	err   error
	panic bool
}

func (i *fakeInjector) TypeString(text string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.panic {
		panic("display connection lost")
	}
	if i.err != nil {
		return i.err
	}
	i.typed = append(i.typed, text)
	return nil
}

func (i *fakeInjector) Typed() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.typed...)
}

var referenceInstant = time.Date(2023, 6, 1, 12, 34, 56, 789_000_000, time.UTC)

func newTestOrchestrator(t *testing.T, reg Registrar, inj Injector) (*Orchestrator, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o, err := New(reg, inj, Options{
		ProcessName: "test_process",
		Clock:       fixedClock{t: referenceInstant},
		Logger:      logger,
	})
	require.NoError(t, err)
	return o, &logs
}

func TestNew_Defaults(t *testing.T) {
	o, err := New(newFakeRegistrar(), &fakeInjector{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(os.Args[0]), o.ProcessName())
	assert.Equal(t, Unregistered, o.State())
	assert.Equal(t, Accelerator, o.Combo().String())
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, &fakeInjector{}, Options{})
	assert.Error(t, err)
	_, err = New(newFakeRegistrar(), nil, Options{})
	assert.Error(t, err)
}

func TestStart_Registers(t *testing.T) {
	reg := newFakeRegistrar()
	o, logs := newTestOrchestrator(t, reg, &fakeInjector{})

	require.NoError(t, o.Start())
	assert.Equal(t, Registered, o.State())
	assert.True(t, reg.IsRegistered(o.Combo()))
	assert.Contains(t, logs.String(), "process=test_process")
	assert.Contains(t, logs.String(), "module=shortcut")
}

func TestStart_Idempotent(t *testing.T) {
	reg := newFakeRegistrar()
	o, _ := newTestOrchestrator(t, reg, &fakeInjector{})

	require.NoError(t, o.Start())
	require.NoError(t, o.Start())

	assert.Equal(t, Registered, o.State())
	assert.True(t, reg.IsRegistered(o.Combo()))
	assert.Equal(t, 1, reg.registerCalls)

	// The registrar itself also tolerates a repeated bind.
	require.NoError(t, reg.Register(o.Combo(), func() {}))
	assert.True(t, reg.IsRegistered(o.Combo()))
}

func TestStart_NotBoundAfterRegister(t *testing.T) {
	reg := newFakeRegistrar()
	reg.dropOnBind = true
	o, logs := newTestOrchestrator(t, reg, &fakeInjector{})

	err := o.Start()
	require.Error(t, err)
	assert.True(t, IsKind(err, RegistrationFailure))
	assert.ErrorIs(t, err, ErrRegisterFailed)
	assert.Equal(t, Unregistered, o.State())
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "Register attempt failed")
}

func TestStart_RegistrarError(t *testing.T) {
	reg := newFakeRegistrar()
	reg.registerErr = errors.New("hotkey already grabbed by another client")
	o, _ := newTestOrchestrator(t, reg, &fakeInjector{})

	err := o.Start()
	assert.True(t, IsKind(err, RegistrationFailure))
	assert.ErrorIs(t, err, reg.registerErr)
	assert.Equal(t, Unregistered, o.State())
}

func TestStop_Unregisters(t *testing.T) {
	reg := newFakeRegistrar()
	o, _ := newTestOrchestrator(t, reg, &fakeInjector{})

	require.NoError(t, o.Start())
	require.NoError(t, o.Stop())

	assert.False(t, reg.IsRegistered(o.Combo()))
	assert.Equal(t, Unregistered, o.State())
}

func TestStop_StillRegistered(t *testing.T) {
	reg := newFakeRegistrar()
	reg.stickyUnbind = true
	o, logs := newTestOrchestrator(t, reg, &fakeInjector{})

	require.NoError(t, o.Start())
	err := o.Stop()

	require.Error(t, err)
	assert.True(t, IsKind(err, UnregistrationFailure))
	assert.ErrorIs(t, err, ErrStillRegistered)
	assert.Equal(t, Registered, o.State())
	assert.Contains(t, logs.String(), "Accelerator still registered")
}

func TestStart_NoCombinationLeakage(t *testing.T) {
	reg := newFakeRegistrar()
	other := KeyCombo{Ctrl: true, Shift: true, Key: "V"}
	require.NoError(t, reg.Register(other, func() {}))

	o, _ := newTestOrchestrator(t, reg, &fakeInjector{})
	require.NoError(t, o.Start())
	assert.True(t, reg.IsRegistered(other))

	unbound := KeyCombo{Ctrl: true, Alt: true, Key: "T"}
	assert.False(t, reg.IsRegistered(unbound))

	require.NoError(t, o.Stop())
	assert.True(t, reg.IsRegistered(other))
}

func TestPress_InjectsExactTimestamp(t *testing.T) {
	reg := newFakeRegistrar()
	inj := &fakeInjector{}
	o, _ := newTestOrchestrator(t, reg, inj)

	require.NoError(t, o.Start())
	reg.press(t, Accelerator)

	assert.Equal(t, []string{"2023-06-01T12:34:56.789Z"}, inj.Typed())
}

func TestPress_InjectionFailureIsIsolated(t *testing.T) {
	reg := newFakeRegistrar()
	inj := &fakeInjector{err: errors.New("no focused window")}

	var seen []Insertion
	var logs bytes.Buffer
	o, err := New(reg, inj, Options{
		ProcessName: "test_process",
		Clock:       fixedClock{t: referenceInstant},
		Logger:      slog.New(slog.NewTextHandler(&logs, nil)),
		OnInsert:    func(ins Insertion) { seen = append(seen, ins) },
	})
	require.NoError(t, err)
	require.NoError(t, o.Start())

	reg.press(t, Accelerator)
	assert.Empty(t, inj.Typed())
	assert.Contains(t, logs.String(), "InjectionFailure")

	// Later presses still reach the injector.
	inj.mu.Lock()
	inj.err = nil
	inj.mu.Unlock()
	reg.press(t, Accelerator)

	assert.Equal(t, []string{"2023-06-01T12:34:56.789Z"}, inj.Typed())
	assert.Equal(t, Registered, o.State())

	require.Len(t, seen, 2)
	assert.True(t, IsKind(seen[0].Err, InjectionFailure))
	assert.NoError(t, seen[1].Err)
	assert.Equal(t, "2023-06-01T12:34:56.789Z", seen[1].Text)
	assert.True(t, seen[1].At.Equal(referenceInstant))
}

func TestInsert_RecoversInjectorPanic(t *testing.T) {
	inj := &fakeInjector{panic: true}
	o, _ := newTestOrchestrator(t, newFakeRegistrar(), inj)

	var text string
	var err error
	require.NotPanics(t, func() { text, err = o.Insert() })

	assert.Equal(t, "2023-06-01T12:34:56.789Z", text)
	assert.True(t, IsKind(err, InjectionFailure))
	assert.Contains(t, err.Error(), "display connection lost")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "registered", Registered.String())
	assert.Equal(t, "unregistered", Unregistered.String())
	assert.Equal(t, "InjectionFailure", InjectionFailure.String())
}
