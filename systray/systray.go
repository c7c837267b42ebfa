package systray

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
)

// Manager manages the system tray icon and menu
type Manager struct {
	accelerator string
	webURL      string // empty hides "Open Web UI"
	iconData    []byte

	quit     chan struct{}
	quitOnce sync.Once

	mu     sync.Mutex
	status *systray.MenuItem
	state  string
}

// NewManager creates a new systray manager. webURL may be empty.
func NewManager(accelerator, webURL string) *Manager {
	return &Manager{
		accelerator: accelerator,
		webURL:      webURL,
		iconData:    Icon(runtime.GOOS),
		quit:        make(chan struct{}),
		state:       "starting",
	}
}

// Run starts the system tray on the calling goroutine, which must be the
// main one. onStart runs once the tray is ready. Run returns after Stop.
func (m *Manager) Run(onStart func()) {
	systray.Run(func() {
		m.onReady()
		go onStart()
	}, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// WaitForQuit returns a channel that will be closed when user clicks Quit
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// SetState updates the status line, e.g. "registered"
func (m *Manager) SetState(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = state
	if m.status == nil {
		return // not ready yet; onReady picks up the state
	}
	m.status.SetTitle(m.statusTitle())
	systray.SetTooltip(m.tooltip())
}

func (m *Manager) statusTitle() string {
	return fmt.Sprintf("%s: %s", m.accelerator, m.state)
}

func (m *Manager) tooltip() string {
	return fmt.Sprintf("Text Shortcut - %s types the UTC time (%s)", m.accelerator, m.state)
}

// onReady is called when the systray is ready
func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}

	m.mu.Lock()
	systray.SetTitle("Text Shortcut")
	systray.SetTooltip(m.tooltip())
	m.status = systray.AddMenuItem(m.statusTitle(), "Accelerator registration state")
	m.status.Disable()
	m.mu.Unlock()

	systray.AddSeparator()

	var openCh chan struct{}
	if m.webURL != "" {
		openCh = systray.AddMenuItem("Open Web UI", "Open the insertion history dashboard").ClickedCh
	}
	mQuit := systray.AddMenuItem("Quit", "Unregister the shortcut and exit")

	// Handle menu clicks
	go func() {
		for {
			select {
			case <-openCh:
				m.openWebUI()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				m.quitOnce.Do(func() { close(m.quit) })
				return
			}
		}
	}()
}

// onExit is called when the systray is exiting
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}

// openWebUI opens the web UI in the default browser
func (m *Manager) openWebUI() {
	slog.Info("Opening web UI", "url", m.webURL)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", m.webURL)
	case "darwin":
		cmd = exec.Command("open", m.webURL)
	case "linux":
		cmd = exec.Command("xdg-open", m.webURL)
	default:
		slog.Error("Unsupported platform for opening browser", "platform", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Error("Failed to open web UI", "error", err)
	}
}
