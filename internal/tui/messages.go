package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/taskroster/internal/roster"
	"github.com/Iron-Ham/taskroster/internal/tui/styles"
)

// outcomeMsg carries a finished store round trip back to the update loop.
type outcomeMsg struct {
	outcome roster.Outcome
}

// ThemeChangedMsg swaps the styles in use, e.g. after the config file changed.
type ThemeChangedMsg struct {
	Styles *styles.ThemedStyles
}

// executeCmd runs req against the store off the update loop.
func executeCmd(ctx context.Context, ctrl *roster.Controller, req roster.Request) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: ctrl.Execute(ctx, req)}
	}
}
