package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hui-playground/internal/registry"
	"github.com/vovakirdan/hui-playground/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 24
	maxRuns            = 100
)

var historyBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var (
	historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextSketch key.Binding
	PrevSketch key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSketch, k.PrevSketch, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSketch, k.PrevSketch},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSketch: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next sketch"),
		),
		PrevSketch: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev sketch"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel shows recorded runs and aggregate stats per sketch.
type HistoryModel struct {
	sketches []registry.SketchInfo
	cursor   int
	store    *storage.Store
	runs     []storage.Run
	stats    *storage.SketchStats
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int

	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history view over every registered sketch.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		sketches: registry.List(),
		store:    store,
		keys:     DefaultHistoryKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m HistoryModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable creates a table sized to the current layout.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "FPS", Width: 5},
		{Title: "Faults", Width: 6},
		{Title: "Date", Width: 12},
	}

	avail := m.width - 6
	if m.showSidebar() {
		avail -= sidebarWidth + 4
	}
	used := 0
	for _, c := range columns[:len(columns)-1] {
		used += c.Width + 2
	}
	if date := avail - used; date > 12 {
		columns[len(columns)-1].Width = min(date, 18)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads runs and stats for the selected sketch.
func (m *HistoryModel) load() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.sketches) > 0 {
		id := m.sketches[m.cursor].ID
		if runs, err := m.store.TopRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.SketchStats(id); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(historyRows(m.runs))
	m.table.GotoTop()
}

// historyRows formats runs as table rows, ranked in order.
func historyRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			formatSeconds(r.Seconds),
			fmt.Sprintf("%.0f", r.AvgFPS),
			fmt.Sprintf("%d", r.Faults),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// formatSeconds renders a duration as m:ss.
func formatSeconds(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func (m *HistoryModel) move(delta int) {
	if len(m.sketches) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.sketches)) % len(m.sketches)
	m.load()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextSketch):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevSketch):
			m.move(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(historyRows(m.runs))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY"
	if len(m.sketches) > 0 {
		title = "RUN HISTORY - " + m.sketches[m.cursor].Title
	}
	b.WriteString(centerText(historyTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			historyBorder.Width(sidebarWidth).Render(m.renderSidebar()),
			"  ",
			historyBorder.Render(m.renderTable()),
		))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(historyBorder.Render(m.renderTable()))
	}

	b.WriteString("\n")
	b.WriteString(historyDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar lists sketches and the stats of the selected one.
func (m HistoryModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString("Sketches\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	for i, s := range m.sketches {
		line := "  " + s.Title
		if i == m.cursor {
			line = historyTitleStyle.Render("> " + s.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if st := m.stats; st != nil && st.Runs > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "runs    %d\n", st.Runs)
		fmt.Fprintf(&b, "best    %d\n", st.BestScore)
		fmt.Fprintf(&b, "played  %s\n", formatSeconds(st.TotalSeconds))
		fmt.Fprintf(&b, "fps     %.0f\n", st.AvgFPS)
		fmt.Fprintf(&b, "faults  %d\n", st.Faults)
	}
	return b.String()
}

// renderTabs shows the sketch list on one line for narrow terminals.
func (m HistoryModel) renderTabs() string {
	if len(m.sketches) == 0 {
		return ""
	}
	tabs := make([]string, len(m.sketches))
	for i, s := range m.sketches {
		if i == m.cursor {
			tabs[i] = historyTitleStyle.Render("[" + s.Title + "]")
		} else {
			tabs[i] = historyDimStyle.Render(" " + s.Title + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.sketches[m.cursor].Title)
	}
	return line
}

func (m HistoryModel) renderTable() string {
	if len(m.runs) == 0 {
		return historyDimStyle.Italic(true).Padding(2, 4).Render("No runs recorded yet.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
