// Package tui is the terminal front end: a task table with an edit dialog.
package tui

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	mu      sync.Mutex
	program *tea.Program
	model   Model
	opts    []tea.ProgramOption
}

// NewApp creates a new TUI application. Extra program options are appended
// after the alt-screen default, which tests use to swap input and output.
func NewApp(model Model, opts ...tea.ProgramOption) *App {
	return &App{model: model, opts: opts}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.model.ctx)}, a.opts...)

	a.mu.Lock()
	a.program = tea.NewProgram(a.model, opts...)
	a.mu.Unlock()

	// Quit cleanly on termination signals so the terminal is restored.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigChan)
		close(done)
	}()

	go func() {
		select {
		case <-sigChan:
			a.Send(tea.Quit())
		case <-done:
		}
	}()

	_, err := a.program.Run()
	return err
}

// Send delivers msg to the running program. Messages sent before Run are dropped.
func (a *App) Send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
