package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/taskroster/internal/task"
	"github.com/Iron-Ham/taskroster/internal/util"
)

// Layout constants
const (
	labelWidth     = 4  // "#" column
	columnGap      = 2  // spaces between columns
	minDescWidth   = 10 // narrowest Description column
	maxDialogWidth = 64

	// title (2) + header (1) + rule (1) + help bar (2)
	chromeHeight = 6
	// Rounded border (2) + padding (2) + title, two labels, two inputs, hint and gaps (9)
	dialogHeight = 13
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Tasks"))
	if m.pending > 0 {
		b.WriteString("  ")
		b.WriteString(m.styles.Pending.Render(pendingText(m.pending)))
	}
	b.WriteString("\n")

	b.WriteString(m.renderTable())

	if m.editing() {
		b.WriteString("\n")
		b.WriteString(m.renderEditOverlay())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func pendingText(n int) string {
	if n == 1 {
		return "1 request in flight"
	}
	return fmt.Sprintf("%d requests in flight", n)
}

// descWidth is the width left for the Description column.
func (m Model) descWidth() int {
	return max(m.width-labelWidth-m.nameWidth-2*columnGap, minDescWidth)
}

// visibleRows is how many table rows fit on screen.
func (m Model) visibleRows() int {
	if m.height == 0 {
		return max(m.ctrl.Len(), 1)
	}
	h := m.height - chromeHeight
	if m.editing() {
		h -= dialogHeight
	}
	if m.pending > 0 {
		h--
	}
	return max(h, 1)
}

func (m Model) renderTable() string {
	var b strings.Builder
	gap := strings.Repeat(" ", columnGap)

	header := util.FitCell("#", labelWidth) + gap +
		util.FitCell("Task Name", m.nameWidth) + gap +
		util.FitCell("Description", m.descWidth())
	b.WriteString(m.styles.ColumnHeader.Render(header))
	b.WriteString("\n")
	b.WriteString(m.styles.Rule.Render(strings.Repeat("─", labelWidth+m.nameWidth+m.descWidth()+2*columnGap)))
	b.WriteString("\n")

	rows := m.ctrl.Rows()
	if len(rows) == 0 {
		b.WriteString(m.styles.Empty.Render("No tasks."))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.visibleRows(), len(rows))
	for i := m.offset; i < end; i++ {
		r := rows[i]
		label := util.FitCell(r.Label, labelWidth)
		name := util.FitCell(r.Task.Name, m.nameWidth)
		desc := util.FitCell(r.Task.Description, m.descWidth())

		if i == m.cursor {
			b.WriteString(m.styles.SelectedRow.Render(label + gap + name + gap + desc))
		} else {
			b.WriteString(m.styles.RowLabel.Render(label) + gap +
				m.styles.Cell.Render(name) + gap +
				m.styles.Cell.Render(desc))
		}
		b.WriteString("\n")
	}

	if hidden := len(rows) - end; hidden > 0 || m.offset > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("rows %d-%d of %d", m.offset+1, end, len(rows))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) dialogWidth() int {
	return min(max(m.width-4, 30), maxDialogWidth)
}

func (m Model) renderEditOverlay() string {
	var b strings.Builder

	b.WriteString(m.styles.DialogTitle.Render("Edit Task"))
	if s := m.ctrl.Session(); s != nil && s.Dirty() {
		b.WriteString(m.styles.Muted.Render(" (modified)"))
	}
	b.WriteString("\n")
	for i, f := range task.Fields() {
		b.WriteString("\n")
		label := m.styles.FieldLabel
		if i == m.focus {
			label = m.styles.FieldLabelFocused
		}
		b.WriteString(label.Render(fieldLabel(f)))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter to save, esc to cancel"))

	return m.styles.DialogBox.Width(m.dialogWidth()).Render(b.String())
}

func (m Model) renderHelp() string {
	key := m.styles.HelpKey

	if m.editing() {
		return m.styles.HelpBar.Render(
			key.Render("tab") + " next field  " +
				key.Render("enter") + " save  " +
				key.Render("esc") + " cancel",
		)
	}

	return m.styles.HelpBar.Render(
		key.Render("j/k") + " navigate  " +
			key.Render("e") + " edit  " +
			key.Render("d") + " delete  " +
			key.Render("q") + " quit",
	)
}
