package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains all the lipgloss styles built from a color palette.
// Styles are regenerated when the theme changes.
type ThemedStyles struct {
	Palette *ColorPalette

	Title lipgloss.Style
	Muted lipgloss.Style

	// Table
	ColumnHeader lipgloss.Style
	Rule         lipgloss.Style
	RowLabel     lipgloss.Style
	Cell         lipgloss.Style
	SelectedRow  lipgloss.Style
	Empty        lipgloss.Style

	// Edit dialog
	DialogBox          lipgloss.Style
	DialogTitle        lipgloss.Style
	FieldLabel         lipgloss.Style
	FieldLabelFocused  lipgloss.Style
	InputText          lipgloss.Style
	InputPrompt        lipgloss.Style
	InputPromptFocused lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// In-flight indicator
	Pending lipgloss.Style

	// Status messages (settings editor only; the task table stays silent)
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
}

// NewThemedStyles creates all styles from a color palette.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	if p == nil {
		p = DefaultPalette()
	}
	return &ThemedStyles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().Foreground(p.Muted),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text),
		Rule:     lipgloss.NewStyle().Foreground(p.Border),
		RowLabel: lipgloss.NewStyle().Foreground(p.Muted),
		Cell:     lipgloss.NewStyle().Foreground(p.Text),
		SelectedRow: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Background(p.Surface),
		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		DialogBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		FieldLabel: lipgloss.NewStyle().Foreground(p.Muted),
		FieldLabelFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
		InputText:          lipgloss.NewStyle().Foreground(p.Text),
		InputPrompt:        lipgloss.NewStyle().Foreground(p.Muted),
		InputPromptFocused: lipgloss.NewStyle().Foreground(p.Secondary),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),

		Pending: lipgloss.NewStyle().
			Foreground(p.Warning).
			Italic(true),

		ErrorText:   lipgloss.NewStyle().Foreground(p.Error),
		SuccessText: lipgloss.NewStyle().Foreground(p.Secondary),
	}
}
