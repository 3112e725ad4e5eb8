package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/taskroster/internal/roster"
	"github.com/Iron-Ham/taskroster/internal/task"
	"github.com/Iron-Ham/taskroster/internal/tui/styles"
)

// DefaultNameWidth is the Task Name column width used when none is configured.
const DefaultNameWidth = 24

// Options configures a Model.
type Options struct {
	// Context is passed to every store round trip.
	Context context.Context
	// Styles defaults to the default theme.
	Styles *styles.ThemedStyles
	// NameWidth is the Task Name column width.
	NameWidth int
	// Width and Height seed the layout before the first WindowSizeMsg.
	Width, Height int
}

// Model is the Bubbletea model for the task table and its edit dialog.
//
// The model owns the controller: roster and edit session are only touched
// from Update. Store round trips run as commands and come back as outcomeMsg.
type Model struct {
	ctx    context.Context
	ctrl   *roster.Controller
	styles *styles.ThemedStyles

	nameWidth int
	width     int
	height    int
	cursor    int
	offset    int

	inputs  []textinput.Model // one per task.Fields(), same order
	focus   int
	pending int

	quitting bool
}

// New creates a model over ctrl. The controller should already be initialized.
func New(ctrl *roster.Controller, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Styles == nil {
		opts.Styles = styles.NewThemedStyles(nil)
	}
	if opts.NameWidth <= 0 {
		opts.NameWidth = DefaultNameWidth
	}

	m := Model{
		ctx:       opts.Context,
		ctrl:      ctrl,
		styles:    opts.Styles,
		nameWidth: opts.NameWidth,
		width:     opts.Width,
		height:    opts.Height,
	}
	for _, f := range task.Fields() {
		ti := textinput.New()
		ti.CharLimit = 0 // no limit; stored values can be any length
		ti.Width = 40
		ti.Placeholder = fieldLabel(f)
		m.inputs = append(m.inputs, ti)
	}
	m.applyStyles()
	return m
}

// fieldLabel is the dialog label for a field.
func fieldLabel(f task.Field) string {
	switch f {
	case task.FieldName:
		return "Task Name"
	case task.FieldDescription:
		return "Description"
	default:
		return string(f)
	}
}

func (m *Model) applyStyles() {
	for i := range m.inputs {
		m.inputs[i].TextStyle = m.styles.InputText
		m.inputs[i].PlaceholderStyle = m.styles.Muted
		if i == m.focus {
			m.inputs[i].PromptStyle = m.styles.InputPromptFocused
		} else {
			m.inputs[i].PromptStyle = m.styles.InputPrompt
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.inputs = resizeInputs(m.inputs, m.dialogWidth())
		m.scrollToCursor()
		return m, nil

	case ThemeChangedMsg:
		if msg.Styles != nil {
			m.styles = msg.Styles
			m.applyStyles()
		}
		return m, nil

	case outcomeMsg:
		return m.handleOutcome(msg.outcome)

	case tea.KeyMsg:
		if m.editing() {
			return m.handleEditingKeypress(msg)
		}
		return m.handleNormalKeypress(msg)
	}

	// Cursor blink and other input messages.
	if m.editing() {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// editing reports whether the edit dialog is open.
func (m Model) editing() bool {
	return m.ctrl.State() == roster.Editing
}

// Pending returns the number of round trips still in flight.
func (m Model) Pending() int {
	return m.pending
}

// Cursor returns the index of the selected row.
func (m Model) Cursor() int {
	return m.cursor
}

// handleOutcome folds a finished round trip into the roster. Failures are
// logged by the controller and otherwise ignored here.
func (m Model) handleOutcome(out roster.Outcome) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}
	_ = m.ctrl.Apply(out)

	if !m.editing() {
		m.blurInputs()
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) clampCursor() {
	if n := m.ctrl.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

// scrollToCursor keeps the cursor inside the visible window of rows.
func (m *Model) scrollToCursor() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if maxOffset := max(m.ctrl.Len()-visible, 0); m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// selected returns the task under the cursor.
func (m Model) selected() (task.Task, bool) {
	tasks := m.ctrl.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) openDialog(s *roster.EditSession) tea.Cmd {
	working := s.Working()
	for i, f := range task.Fields() {
		m.inputs[i].SetValue(working.Get(f))
		m.inputs[i].CursorEnd()
	}
	return m.setFocus(0)
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.applyStyles()
	return cmd
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.applyStyles()
}

func resizeInputs(inputs []textinput.Model, dialogWidth int) []textinput.Model {
	// Border, padding and prompt take 8 columns.
	w := max(dialogWidth-8, 10)
	for i := range inputs {
		inputs[i].Width = w
	}
	return inputs
}
