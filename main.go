package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.design/x/hotkey/mainthread"

	"markestedt/textshortcut/config"
	"markestedt/textshortcut/shortcut"
	"markestedt/textshortcut/systray"
)

// programName tags log records when running as the executable
const programName = "text_insertion_keyboard_shortcut"

func main() {
	// Bootstrap logging until the configured level is known
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)).With("process", programName))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		slog.Error("Failed to configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.With("process", programName))
	slog.Info("Configuration loaded", "path", cfg.Path())

	agent, err := NewAgent(cfg, programName, logger)
	if err != nil {
		slog.Error("Failed to create agent", "error", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Tray.Enabled {
		err = runWithTray(ctx, cancel, agent)
	} else {
		// The hotkey event loop needs the main thread on macOS
		mainthread.Init(func() { err = agent.Run(ctx) })
	}
	if err != nil {
		slog.Error("Agent error", "error", err)
		os.Exit(1)
	}

	slog.Info("Text shortcut stopped")
}

// runWithTray gives the main thread to the tray loop, which also serves the
// hotkey events, and runs the agent until a signal or the Quit item
func runWithTray(ctx context.Context, cancel context.CancelFunc, agent *Agent) error {
	tray := systray.NewManager(shortcut.Accelerator, agent.WebURL())
	agent.OnStateChange = tray.SetState

	done := make(chan error, 1)
	tray.Run(func() {
		go func() {
			select {
			case <-tray.WaitForQuit():
				cancel()
			case <-ctx.Done():
			}
		}()

		done <- agent.Run(ctx)
		tray.Stop()
	})

	return <-done
}

// newLogger builds the slog logger. File and function come from AddSource.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}
}
