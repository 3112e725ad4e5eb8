// Package config is an interactive editor for the taskroster config file.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskroster/internal/config"
	"github.com/Iron-Ham/taskroster/internal/tui/styles"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string   // "string", "bool", "int", "select"
	Options     []string // For select type
	Secret      bool     // Mask the value when displayed
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	styles         *styles.ThemedStyles
	categories     []Category
	categoryIndex  int
	itemIndex      int
	scrollOffset   int
	width          int
	height         int
	editing        bool
	textInput      textinput.Model
	selectIndex    int // For select-type options
	errorMsg       string
	infoMsg        string
	quitting       bool
	configModified bool
}

// Categories returns the editable settings grouped for display.
func Categories() []Category {
	return []Category{
		{
			Name: "Store",
			Items: []ConfigItem{
				{
					Key:         "store.backend",
					Label:       "Backend",
					Description: "Where tasks live: Supabase/PostgREST, PostgreSQL or MySQL",
					Type:        "select",
					Options:     config.ValidBackends(),
				},
				{
					Key:         "store.url",
					Label:       "Project URL",
					Description: "Base address of the Supabase project (postgrest backend)",
					Type:        "string",
				},
				{
					Key:         "store.key",
					Label:       "Access Key",
					Description: "Anon or service key sent with every request (postgrest backend)",
					Type:        "string",
					Secret:      true,
				},
				{
					Key:         "store.table",
					Label:       "Table",
					Description: "Name of the tasks table",
					Type:        "string",
				},
				{
					Key:         "store.dsn",
					Label:       "DSN",
					Description: "Connection string (postgres and mysql backends)",
					Type:        "string",
					Secret:      true,
				},
				{
					Key:         "store.ensure_table",
					Label:       "Create Table",
					Description: "Create the tasks table on startup if missing (postgres and mysql)",
					Type:        "bool",
				},
			},
		},
		{
			Name: "Display",
			Items: []ConfigItem{
				{
					Key:         "tui.theme",
					Label:       "Theme",
					Description: "Built-in color theme",
					Type:        "select",
					Options:     config.ValidThemes(),
				},
				{
					Key:         "tui.theme_file",
					Label:       "Theme File",
					Description: "Path to a YAML theme; overrides Theme when set",
					Type:        "string",
				},
				{
					Key:         "tui.name_width",
					Label:       "Name Column Width",
					Description: "Width of the Task Name column (8-80)",
					Type:        "int",
				},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{
					Key:         "logging.enabled",
					Label:       "Enabled",
					Description: "Write a JSON log file",
					Type:        "bool",
				},
				{
					Key:         "logging.level",
					Label:       "Level",
					Description: "Minimum level written to the log",
					Type:        "select",
					Options:     config.ValidLogLevels(),
				},
				{
					Key:         "logging.dir",
					Label:       "Directory",
					Description: "Log directory (empty = state directory)",
					Type:        "string",
				},
				{
					Key:         "logging.max_size_mb",
					Label:       "Max Size (MB)",
					Description: "Rotate the log file past this size",
					Type:        "int",
				},
				{
					Key:         "logging.max_backups",
					Label:       "Max Backups",
					Description: "Rotated files to keep",
					Type:        "int",
				},
				{
					Key:         "logging.compress",
					Label:       "Compress Backups",
					Description: "Gzip rotated log files",
					Type:        "bool",
				},
			},
		},
	}
}

// New creates a new config model. A nil st uses the default theme.
func New(st *styles.ThemedStyles) Model {
	if st == nil {
		st = styles.NewThemedStyles(nil)
	}
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 40

	return Model{
		styles:     st,
		categories: Categories(),
		textInput:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureSelectionVisible(m.availableLines())
		return m, nil

	case tea.KeyMsg:
		// Clear messages on any key
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.moveUp()

		case "down", "j":
			m.moveDown()

		case "ctrl+d", "pgdown":
			for range max(m.availableLines()/2, 1) {
				m.moveDown()
			}

		case "ctrl+u", "pgup":
			for range max(m.availableLines()/2, 1) {
				m.moveUp()
			}

		case "g":
			m.categoryIndex = 0
			m.itemIndex = 0

		case "G":
			m.categoryIndex = len(m.categories) - 1
			m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1

		case "tab":
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex = (m.categoryIndex + len(m.categories) - 1) % len(m.categories)
			m.itemIndex = 0

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case "bool":
				viper.Set(item.Key, !viper.GetBool(item.Key))
				m.saveConfig()
			case "select":
				m.editing = true
				m.selectIndex = m.getCurrentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(m.getCurrentValue())
				m.textInput.CursorEnd()
				m.textInput.Focus()
			}

		case "r":
			m.resetCurrentToDefault()
		}
		m.ensureSelectionVisible(m.availableLines())
	}

	return m, nil
}

// moveUp selects the previous item, wrapping into the previous category.
func (m *Model) moveUp() {
	if m.itemIndex > 0 {
		m.itemIndex--
		return
	}
	if m.categoryIndex > 0 {
		m.categoryIndex--
		m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
	}
}

// moveDown selects the next item, continuing into the next category.
func (m *Model) moveDown() {
	if m.itemIndex < len(m.categories[m.categoryIndex].Items)-1 {
		m.itemIndex++
		return
	}
	if m.categoryIndex < len(m.categories)-1 {
		m.categoryIndex++
		m.itemIndex = 0
	}
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		if item.Type == "select" {
			viper.Set(item.Key, item.Options[m.selectIndex])
			m.saveConfig()
			m.editing = false
			return m, nil
		}
		if err := m.validateAndSet(item, m.textInput.Value()); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.saveConfig()
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "up", "k":
		if item.Type == "select" {
			m.selectIndex = (m.selectIndex + len(item.Options) - 1) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == "select" {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Type != "select" {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// totalLines is the number of lines the category list renders to.
func (m Model) totalLines() int {
	n := 0
	for _, cat := range m.categories {
		n += len(cat.Items) + 2 // header + items + blank line
	}
	return n - 1 // no blank after the last category
}

// currentSelectionLine is the line of the selected item within the list.
func (m Model) currentSelectionLine() int {
	line := 0
	for ci := 0; ci < m.categoryIndex; ci++ {
		line += len(m.categories[ci].Items) + 2
	}
	return line + 1 + m.itemIndex
}

// availableLines is how many list lines fit around the header, description and help.
func (m Model) availableLines() int {
	if m.height == 0 {
		return m.totalLines()
	}
	return max(m.height-12, 5)
}

// ensureSelectionVisible scrolls so the selected item is in the viewport.
func (m *Model) ensureSelectionVisible(available int) {
	line := m.currentSelectionLine()
	if line < m.scrollOffset {
		m.scrollOffset = line
	}
	if line >= m.scrollOffset+available {
		m.scrollOffset = line - available + 1
	}
	if maxOffset := max(m.totalLines()-available, 0); m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("taskroster configuration"))
	b.WriteString("\n")

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = config.ConfigFile() + " (not created)"
	}
	b.WriteString(m.styles.Muted.Render("Config file: " + configPath))
	b.WriteString("\n\n")

	var lines []string
	for ci, cat := range m.categories {
		catStyle := m.styles.FieldLabel.Bold(true)
		if ci == m.categoryIndex {
			catStyle = m.styles.DialogTitle
		}
		lines = append(lines, catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		for ii, item := range cat.Items {
			lines = append(lines, m.renderItem(item, ci == m.categoryIndex && ii == m.itemIndex))
		}
		if ci < len(m.categories)-1 {
			lines = append(lines, "")
		}
	}

	available := m.availableLines()
	start := min(m.scrollOffset, len(lines))
	end := min(start+available, len(lines))
	if start > 0 {
		b.WriteString(m.styles.Muted.Render("  ▲ more above"))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n")
	if end < len(lines) {
		b.WriteString(m.styles.Muted.Render("  ▼ more below"))
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(m.styles.Muted.Render(m.currentItem().Description))
	}
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorText.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.SuccessText.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	value := DisplayValue(item)
	paddedLabel := fmt.Sprintf("%-20s", item.Label)

	if selected {
		return fmt.Sprintf("  %s %s  %s",
			m.styles.HelpKey.Render(">"),
			m.styles.ColumnHeader.Render(paddedLabel),
			m.styles.DialogTitle.UnsetBold().Render(value))
	}
	return fmt.Sprintf("    %s  %s",
		m.styles.FieldLabel.Render(paddedLabel),
		m.styles.Cell.Render(value))
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()
	var content string

	if item.Type == "select" {
		content = fmt.Sprintf("Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content += m.styles.SelectedRow.Render(fmt.Sprintf(" > %s ", opt)) + "\n"
			} else {
				content += m.styles.Cell.Render(fmt.Sprintf("   %s ", opt)) + "\n"
			}
		}
		content += "\n" + m.styles.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel")
	} else {
		content = fmt.Sprintf("Edit %s:\n\n", item.Label)
		content += m.textInput.View()
		content += "\n\n" + m.styles.Muted.Render("enter to save, esc to cancel")
	}

	return "\n" + m.styles.DialogBox.Width(50).Render(content)
}

func (m Model) renderHelp() string {
	key := m.styles.HelpKey

	if m.editing {
		return m.styles.HelpBar.Render(
			key.Render("enter") + " save  " +
				key.Render("esc") + " cancel",
		)
	}

	return m.styles.HelpBar.Render(
		key.Render("j/k") + " navigate  " +
			key.Render("tab") + " next category  " +
			key.Render("enter/space") + " edit  " +
			key.Render("r") + " reset  " +
			key.Render("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) getCurrentValue() string {
	item := m.currentItem()
	switch item.Type {
	case "bool":
		return strconv.FormatBool(viper.GetBool(item.Key))
	case "int":
		return strconv.Itoa(viper.GetInt(item.Key))
	default:
		return viper.GetString(item.Key)
	}
}

// DisplayValue renders the current value of item, masking secrets.
func DisplayValue(item ConfigItem) string {
	switch item.Type {
	case "bool":
		return strconv.FormatBool(viper.GetBool(item.Key))
	case "int":
		return strconv.Itoa(viper.GetInt(item.Key))
	}

	v := viper.GetString(item.Key)
	if v == "" {
		return "(not set)"
	}
	if item.Secret {
		return maskSecret(v)
	}
	return v
}

// maskSecret hides all but the last four characters.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("•", len(s))
	}
	return strings.Repeat("•", 8) + s[len(s)-4:]
}

func (m Model) getCurrentSelectIndex() int {
	item := m.currentItem()
	if i := slices.Index(item.Options, viper.GetString(item.Key)); i >= 0 {
		return i
	}
	return 0
}

func (m *Model) validateAndSet(item ConfigItem, value string) error {
	v, err := ParseValue(item, value)
	if err != nil {
		return err
	}
	viper.Set(item.Key, v)
	return nil
}

func (m *Model) saveConfig() {
	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
		return
	}

	if err := viper.WriteConfigAs(config.ConfigFile()); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return
	}

	m.infoMsg = "Saved!"
	m.configModified = true
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	if defaultVal, ok := DefaultValue(item.Key); ok {
		viper.Set(item.Key, defaultVal)
		m.saveConfig()
		if m.errorMsg == "" {
			m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
		}
	}
}

// DefaultValue returns the built-in default for an editable key.
func DefaultValue(key string) (any, bool) {
	d := config.Default()

	defaultValues := map[string]any{
		"store.backend":       d.Store.Backend,
		"store.url":           d.Store.URL,
		"store.key":           d.Store.Key,
		"store.table":         d.Store.Table,
		"store.dsn":           d.Store.DSN,
		"store.ensure_table":  d.Store.EnsureTable,
		"tui.theme":           d.TUI.Theme,
		"tui.theme_file":      d.TUI.ThemeFile,
		"tui.name_width":      d.TUI.NameWidth,
		"logging.enabled":     d.Logging.Enabled,
		"logging.level":       d.Logging.Level,
		"logging.dir":         d.Logging.Dir,
		"logging.max_size_mb": d.Logging.MaxSizeMB,
		"logging.max_backups": d.Logging.MaxBackups,
		"logging.compress":    d.Logging.Compress,
	}
	v, ok := defaultValues[key]
	return v, ok
}

// FindItem returns the editable item with the given key.
func FindItem(key string) (ConfigItem, bool) {
	for _, cat := range Categories() {
		for _, item := range cat.Items {
			if item.Key == key {
				return item, true
			}
		}
	}
	return ConfigItem{}, false
}

// ParseValue converts a user-supplied string into the typed value for item.
func ParseValue(item ConfigItem, value string) (any, error) {
	switch item.Type {
	case "int":
		intVal, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("expected integer value")
		}
		if intVal < 0 {
			return nil, fmt.Errorf("value must be non-negative")
		}
		return intVal, nil
	case "bool":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("expected true or false")
		}
		return b, nil
	case "select":
		if !slices.Contains(item.Options, value) {
			return nil, fmt.Errorf("invalid option: %s (valid: %s)", value, strings.Join(item.Options, ", "))
		}
		return value, nil
	default:
		return strings.TrimSpace(value), nil
	}
}

// Modified reports whether anything was saved during the session.
func (m Model) Modified() bool {
	return m.configModified
}

// Run starts the interactive config UI
func Run(st *styles.ThemedStyles) error {
	p := tea.NewProgram(New(st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
