package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "jobtrack/internal/modules/analytics/dto"
	trackerdto "jobtrack/internal/modules/tracker/dto"
	"jobtrack/internal/ui/components"
	"jobtrack/internal/ui/theme"
	appsview "jobtrack/internal/ui/views/applications"
	dashview "jobtrack/internal/ui/views/dashboard"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type trackerPort interface {
	List(ctx context.Context, input trackerdto.ListInput) ([]trackerdto.ApplicationOutput, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	RecordResponse(ctx context.Context, id int64, date string) error
	Delete(ctx context.Context, id int64) error
}

type analyticsPort interface {
	Dashboard(ctx context.Context) (analyticsdto.DashboardOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabApplications
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Applications"}

// ─── async messages ───────────────────────────────────────────────────────────

// mutatedMsg reports a finished write. Both tabs reload on success.
type mutatedMsg struct {
	what string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette. Writes go through the tracker port; rendering is
// delegated to sub-views.
type Model struct {
	tracker trackerPort

	dashView dashview.Model
	appsView appsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(tracker trackerPort, analytics analyticsPort) Model {
	return Model{
		tracker:   tracker,
		dashView:  dashview.New(analytics),
		appsView:  appsview.New(tracker),
		activeTab: tabDashboard,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dashView.Init(), m.appsView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Loaded messages are routed by type so a reload finishing on the hidden
	// tab still lands.
	case dashview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		if msg.Err != nil {
			m.status = "dashboard: " + msg.Err.Error()
		}
		return m, cmd

	case appsview.LoadedMsg:
		var cmd tea.Cmd
		m.appsView, cmd = m.appsView.Update(msg)
		if msg.Err == nil && m.activeTab == tabApplications {
			m.status = fmt.Sprintf("%d applications", len(msg.Applications))
		}
		return m, cmd

	case mutatedMsg:
		if msg.err != nil {
			m.status = msg.what + " failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.what
		return m, m.reload()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.activeTab == tabApplications && m.appsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "refreshing"
			return m, m.reload()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabApplications:
		m.appsView, tabCmd = m.appsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabApplications:
		content = m.appsView.View()
	default:
		content = m.dashView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "jobtrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if f := m.appsView.FilterText(); f != "" {
		left = theme.Hot.Render("filter: "+f) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  r:refresh  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

// command is one parsed palette line. id is 0 when the line names none.
type command struct {
	name string
	id   int64
	args []string
}

// parseCommand splits input into a verb, an optional leading numeric id and
// the remaining arguments.
func parseCommand(input string) (command, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return command{}, false
	}
	cmd := command{name: strings.ToLower(parts[0]), args: parts[1:]}
	if len(cmd.args) > 0 {
		if id, err := strconv.ParseInt(cmd.args[0], 10, 64); err == nil && id > 0 {
			cmd.id = id
			cmd.args = cmd.args[1:]
		}
	}
	return cmd, true
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	cmd, ok := parseCommand(input)
	if !ok {
		return m, nil
	}
	target := cmd.id
	if target == 0 {
		target, _ = m.appsView.SelectedID()
	}

	switch cmd.name {
	case "status":
		if len(cmd.args) == 0 {
			m.status = "usage: status [id] <status>"
			return m, nil
		}
		if target == 0 {
			m.status = "no application selected"
			return m, nil
		}
		status := strings.Join(cmd.args, " ")
		return m, m.mutate(fmt.Sprintf("#%d → %s", target, status), func(ctx context.Context) error {
			return m.tracker.UpdateStatus(ctx, target, status)
		})

	case "respond":
		if target == 0 {
			m.status = "no application selected"
			return m, nil
		}
		date := ""
		if len(cmd.args) > 0 {
			date = cmd.args[0]
		}
		return m, m.mutate(fmt.Sprintf("#%d response recorded", target), func(ctx context.Context) error {
			return m.tracker.RecordResponse(ctx, target, date)
		})

	case "delete":
		if target == 0 {
			m.status = "no application selected"
			return m, nil
		}
		return m, m.mutate(fmt.Sprintf("#%d deleted", target), func(ctx context.Context) error {
			return m.tracker.Delete(ctx, target)
		})

	case "filter":
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), strings.Fields(input)[0]))
		m.activeTab = tabApplications
		if text == "" {
			m.status = "filter cleared"
		} else {
			m.status = "filter: " + text
		}
		return m, m.appsView.SetFilter(text)

	case "refresh":
		m.status = "refreshing"
		return m, m.reload()

	case "dashboard":
		m.activeTab = tabDashboard
		return m, nil

	case "applications", "apps":
		m.activeTab = tabApplications
		return m, nil

	default:
		m.status = "unknown command: " + cmd.name
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.appsView, _ = m.appsView.Update(sz)
}

func (m Model) reload() tea.Cmd {
	return tea.Batch(m.dashView.Reload(), m.appsView.Reload())
}

func (m Model) mutate(what string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if m.tracker == nil {
			return mutatedMsg{what: what, err: fmt.Errorf("tracker not configured")}
		}
		return mutatedMsg{what: what, err: fn(context.Background())}
	}
}
