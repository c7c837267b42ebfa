package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"markestedt/textshortcut/config"
	"markestedt/textshortcut/platform"
	"markestedt/textshortcut/shortcut"
	"markestedt/textshortcut/storage"
	"markestedt/textshortcut/web"
)

// Agent ties the shortcut lifecycle to the process lifecycle and fans
// insertions out to history and the web UI
type Agent struct {
	cfg      *config.Config
	logger   *slog.Logger
	shortcut *shortcut.Orchestrator
	db       *storage.DB // nil unless history is enabled
	web      *web.Server // nil unless the web UI is enabled

	// OnStateChange is called with the registration state after startup and shutdown
	OnStateChange func(state string)
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config, processName string, logger *slog.Logger) (*Agent, error) {
	return newAgent(cfg, processName, logger, platform.NewRegistrar(), nil)
}

func newAgent(cfg *config.Config, processName string, logger *slog.Logger, registrar shortcut.Registrar, injector shortcut.Injector) (*Agent, error) {
	if injector == nil {
		var err error
		injector, err = platform.NewInjector(cfg.Injection.Method)
		if err != nil {
			return nil, fmt.Errorf("failed to create injector: %w", err)
		}
	}

	a := &Agent{
		cfg:    cfg,
		logger: logger.With("process", processName, "module", "agent"),
	}

	if cfg.History.Enabled {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := storage.Open(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		a.db = db
	}

	orchestrator, err := shortcut.New(registrar, injector, shortcut.Options{
		ProcessName: processName,
		Logger:      logger,
		OnInsert:    a.recordInsertion,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to create shortcut: %w", err)
	}
	a.shortcut = orchestrator

	if cfg.Web.Enabled {
		a.web = web.NewServer(a.db, a.Status, cfg.Web.Port)
	}

	return a, nil
}

// WebURL returns the web UI address, or "" when it is disabled
func (a *Agent) WebURL() string {
	if a.web == nil {
		return ""
	}
	return a.web.URL()
}

// Run registers the shortcut, waits for ctx to be cancelled, then
// unregisters it. Registration failures are logged and do not end the run.
func (a *Agent) Run(ctx context.Context) error {
	defer a.close()

	var wg sync.WaitGroup
	if a.web != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.web.Start(ctx); err != nil {
				a.logger.Error("Web server error", "error", err)
			}
		}()
	}

	if err := a.shortcut.Start(); err == nil {
		a.logger.Info("Text shortcut started",
			"accelerator", a.shortcut.Combo().String(),
			"method", a.cfg.Injection.Method,
			"history", a.db != nil,
		)
	}
	a.publishState()

	<-ctx.Done()

	if err := a.shortcut.Stop(); err == nil {
		a.logger.Info("Text shortcut unregistered")
	}
	a.publishState()

	wg.Wait()
	return nil
}

// Status reports the agent state for the web UI
func (a *Agent) Status() web.Status {
	return web.Status{
		Process:     a.shortcut.ProcessName(),
		Accelerator: a.shortcut.Combo().String(),
		State:       a.shortcut.State().String(),
		Method:      a.cfg.Injection.Method,
		History:     a.db != nil,
	}
}

func (a *Agent) publishState() {
	state := a.shortcut.State().String()
	if a.OnStateChange != nil {
		a.OnStateChange(state)
	}
	if a.web != nil {
		a.web.BroadcastStatus(state)
	}
}

// recordInsertion saves the outcome of one press and broadcasts it
func (a *Agent) recordInsertion(ins shortcut.Insertion) {
	var id int64
	if a.db != nil {
		rec := &storage.Insertion{
			Timestamp:          ins.At,
			Text:               ins.Text,
			Accelerator:        a.shortcut.Combo().String(),
			Method:             a.cfg.Injection.Method,
			InjectionLatencyMs: ins.Latency.Milliseconds(),
			Success:            ins.Err == nil,
		}
		if ins.Err != nil {
			rec.ErrorMessage = ins.Err.Error()
		}

		if err := a.db.SaveInsertion(rec); err != nil {
			a.logger.Error("Failed to save insertion", "error", err)
		} else {
			id = rec.ID
		}
	}

	if a.web != nil {
		a.web.BroadcastInsertion(ins, id)
	}
}

func (a *Agent) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("Failed to close history", "error", err)
		}
		a.db = nil
	}
}
