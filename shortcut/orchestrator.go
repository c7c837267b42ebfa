// Package shortcut binds the timestamp accelerator and types the current UTC
// time into the focused application whenever it is pressed.
package shortcut

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Registrar binds key combinations at the OS level
type Registrar interface {
	Register(combo KeyCombo, callback func()) error
	IsRegistered(combo KeyCombo) bool
	Unregister(combo KeyCombo) error
}

// Injector types text into whichever application has input focus
type Injector interface {
	TypeString(text string) error
}

// State is the registration state of the accelerator
type State int

const (
	Unregistered State = iota
	Registered
)

func (s State) String() string {
	if s == Registered {
		return "registered"
	}
	return "unregistered"
}

// Insertion describes one accelerator press
type Insertion struct {
	Text    string
	At      time.Time
	Latency time.Duration
	Err     error
}

// Options configures an Orchestrator. Zero values are replaced by defaults.
type Options struct {
	// ProcessName tags every log record. Empty means the host executable name.
	ProcessName string
	Clock       Clock
	Logger      *slog.Logger
	// OnInsert is called after every insertion attempt, successful or not
	OnInsert func(Insertion)
}

// Orchestrator owns the accelerator registration lifecycle
type Orchestrator struct {
	registrar   Registrar
	injector    Injector
	clock       Clock
	logger      *slog.Logger
	onInsert    func(Insertion)
	processName string
	combo       KeyCombo

	mu    sync.Mutex
	state State
}

// New creates an orchestrator in the Unregistered state
func New(registrar Registrar, injector Injector, opts Options) (*Orchestrator, error) {
	if registrar == nil || injector == nil {
		return nil, fmt.Errorf("registrar and injector are required")
	}

	combo, err := ParseAccelerator(Accelerator)
	if err != nil {
		return nil, fmt.Errorf("failed to parse accelerator: %w", err)
	}

	processName := opts.ProcessName
	if processName == "" {
		processName = filepath.Base(os.Args[0])
	}

	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		registrar:   registrar,
		injector:    injector,
		clock:       clock,
		logger:      logger.With("process", processName, "module", "shortcut"),
		onInsert:    opts.OnInsert,
		processName: processName,
		combo:       combo,
	}, nil
}

// Combo returns the bound key combination
func (o *Orchestrator) Combo() KeyCombo {
	return o.combo
}

// ProcessName returns the name used to tag log records
func (o *Orchestrator) ProcessName() string {
	return o.processName
}

// State returns the current registration state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Start registers the accelerator. On failure the orchestrator stays
// Unregistered and the returned *Failure has already been logged.
func (o *Orchestrator) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	accel := o.combo.String()
	if o.state == Registered && o.registrar.IsRegistered(o.combo) {
		o.logger.Debug("Accelerator already registered", "accelerator", accel)
		return nil
	}

	o.logger.Debug("Registering accelerator", "accelerator", accel)

	err := o.registrar.Register(o.combo, o.handle)
	if err == nil && !o.registrar.IsRegistered(o.combo) {
		err = ErrRegisterFailed
	}
	if err != nil {
		o.state = Unregistered
		failure := &Failure{Kind: RegistrationFailure, Accelerator: accel, Err: err}
		o.logger.Error("Register attempt failed", "accelerator", accel, "error", err)
		return failure
	}

	o.state = Registered
	o.logger.Debug("Accelerator registered", "accelerator", accel)
	return nil
}

// Stop unregisters the accelerator and verifies it is no longer bound
func (o *Orchestrator) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	accel := o.combo.String()
	o.logger.Debug("Unregistering accelerator", "accelerator", accel)

	err := o.registrar.Unregister(o.combo)
	if err == nil && o.registrar.IsRegistered(o.combo) {
		err = ErrStillRegistered
	}
	if err != nil {
		if !o.registrar.IsRegistered(o.combo) {
			o.state = Unregistered
		}
		o.logger.Error("Accelerator still registered", "accelerator", accel, "error", err)
		return &Failure{Kind: UnregistrationFailure, Accelerator: accel, Err: err}
	}

	o.state = Unregistered
	o.logger.Debug("Accelerator unregistered", "accelerator", accel)
	return nil
}

// Insert formats the current UTC time and types it at the cursor.
// It is the callback bound to the accelerator.
func (o *Orchestrator) Insert() (string, error) {
	at := o.clock.Now()
	text := FormatUTC(at)

	err := o.inject(text)
	ins := Insertion{
		Text:    text,
		At:      at,
		Latency: o.clock.Now().Sub(at),
	}

	if err != nil {
		err = &Failure{Kind: InjectionFailure, Accelerator: o.combo.String(), Err: err}
		ins.Err = err
		o.logger.Error("Failed to inject timestamp", "text", text, "error", err)
	} else {
		o.logger.Debug("Timestamp injected", "text", text, "latency", ins.Latency)
	}

	if o.onInsert != nil {
		o.onInsert(ins)
	}

	return text, err
}

func (o *Orchestrator) handle() {
	// Errors are logged by Insert; the listener keeps running.
	_, _ = o.Insert()
}

func (o *Orchestrator) inject(text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("injector panicked: %v", r)
		}
	}()
	return o.injector.TypeString(text)
}
