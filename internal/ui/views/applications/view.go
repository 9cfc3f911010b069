package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerdto "jobtrack/internal/modules/tracker/dto"
	"jobtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ApplicationsPort interface {
	List(ctx context.Context, input trackerdto.ListInput) ([]trackerdto.ApplicationOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Applications []trackerdto.ApplicationOutput
	Err          error
}

// ─── list item ───────────────────────────────────────────────────────────────

type applicationItem struct {
	app trackerdto.ApplicationOutput
}

func (i applicationItem) Title() string {
	return fmt.Sprintf("%s — %s", i.app.Company, i.app.Role)
}

func (i applicationItem) Description() string {
	return fmt.Sprintf("#%d  %s  %s", i.app.ID, i.app.DateApplied, theme.Status(i.app.Status).Render(i.app.Status))
}

func (i applicationItem) FilterValue() string { return i.app.Company + " " + i.app.Role }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ApplicationsPort
	list    list.Model
	filter  trackerdto.ListInput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ApplicationsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Applications"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload lists applications with the current filter.
func (m Model) Reload() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("tracker not configured")}
		}
		apps, err := m.port.List(context.Background(), filter)
		return LoadedMsg{Applications: apps, Err: err}
	}
}

// SetFilter narrows the list to companies containing text. Empty text clears it.
func (m *Model) SetFilter(text string) tea.Cmd {
	m.filter.CompanySubstr = strings.TrimSpace(text)
	return m.Reload()
}

func (m Model) FilterText() string { return m.filter.CompanySubstr }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Applications — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Applications"
		if m.filter.CompanySubstr != "" {
			m.list.Title += fmt.Sprintf(" (company ~ %q)", m.filter.CompanySubstr)
		}
		items := make([]list.Item, len(msg.Applications))
		for i, a := range msg.Applications {
			items[i] = applicationItem{app: a}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading applications…")
	}

	listW := m.width * 55 / 100
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedID returns the highlighted application's id, if any.
func (m Model) SelectedID() (int64, bool) {
	if item, ok := m.list.SelectedItem().(applicationItem); ok {
		return item.app.ID, true
	}
	return 0, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 55 / 100
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(applicationItem)
	if !ok {
		return theme.Muted.Render("No applications yet. Try `jobtrack seed` or `jobtrack import`.")
	}
	a := item.app
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(a.Company) + "\n")
	sb.WriteString(a.Role + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + fmt.Sprint(a.ID) + "\n")
	sb.WriteString(theme.Muted.Render("applied:  ") + a.DateApplied + "\n")
	sb.WriteString(theme.Muted.Render("status:   ") + theme.Status(a.Status).Render(a.Status) + "\n")
	if a.ResponseDate != "" {
		sb.WriteString(theme.Muted.Render("response: ") + a.ResponseDate + "\n")
	}
	if a.ImportBatch != "" {
		sb.WriteString(theme.Muted.Render("batch:    ") + a.ImportBatch + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(": status <s>  : respond [date]  : delete"))
	return sb.String()
}
