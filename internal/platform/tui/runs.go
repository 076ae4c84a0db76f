package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-jumper/internal/registry"
	"github.com/vovakirdan/tui-jumper/internal/replay"
	"github.com/vovakirdan/tui-jumper/internal/storage"
)

const maxListedRuns = 100

// RunsKeyMap defines key bindings for the run browser.
type RunsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Verify   key.Binding
	Delete   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.NextGame, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultRunsKeyMap returns the default keybindings for the run browser.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	filters  []string // Game ids to filter by; "" lists every game
	cursor   int
	store    *storage.Store
	runs     []storage.RunSummary
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates a run browser over store.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	filters := []string{""}
	for _, g := range registry.List() {
		filters = append(filters, g.ID)
	}

	m := RunsModel{
		filters: filters,
		store:   store,
		keys:    DefaultRunsKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 10},
		{Title: "Game", Width: 16},
		{Title: "Ticks", Width: 8},
		{Title: "Sessions", Width: 9},
		{Title: "Score", Width: 7},
		{Title: "Date", Width: 14},
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

// filter returns the game id currently filtered by.
func (m RunsModel) filter() string {
	return m.filters[m.cursor]
}

// loadRuns loads runs for the current filter.
func (m *RunsModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.ListRuns(m.filter(), maxListedRuns)
		if err != nil {
			m.status = err.Error()
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			shortID(r.ID),
			r.GameID,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Sessions),
			fmt.Sprintf("%d", r.FinalScore),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selected returns the highlighted run.
func (m RunsModel) selected() (storage.RunSummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.RunSummary{}, false
	}
	return m.runs[i], true
}

// Init initializes the run browser.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.status = ""
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.cursor = (m.cursor - 1 + len(m.filters)) % len(m.filters)
			m.status = ""
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifySelected replays the highlighted run and reports the outcome.
func (m *RunsModel) verifySelected() {
	sum, ok := m.selected()
	if !ok || m.store == nil {
		return
	}
	run, err := m.store.Run(sum.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	res, err := replay.Verify(run)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("run %s replays: %d ticks, %d sessions, final score %d",
		shortID(run.ID), res.Ticks, res.Sessions, res.FinalScore)
}

// deleteSelected removes the highlighted run.
func (m *RunsModel) deleteSelected() {
	sum, ok := m.selected()
	if !ok || m.store == nil {
		return
	}
	if err := m.store.DeleteRun(sum.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("deleted run %s", shortID(sum.ID))
	m.loadRuns()
}

// View renders the run browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RECORDED RUNS - all games"
	if f := m.filter(); f != "" {
		title = "RECORDED RUNS - " + f
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to record one!")
	}
	return m.table.View()
}

// Status returns the last status line.
func (m RunsModel) Status() string {
	return m.status
}

// RunBrowser runs the run browser screen.
func RunBrowser(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// shortID abbreviates a run id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
