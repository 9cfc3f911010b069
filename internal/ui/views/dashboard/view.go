package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtrack/internal/modules/analytics/dto"
	"jobtrack/internal/ui/theme"
)

type DashboardPort interface {
	Dashboard(ctx context.Context) (dto.DashboardOutput, error)
}

type LoadedMsg struct {
	Dashboard dto.DashboardOutput
	Err       error
}

type Model struct {
	port    DashboardPort
	data    dto.DashboardOutput
	err     error
	body    viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port DashboardPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, body: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches a fresh dashboard.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("analytics not configured")}
		}
		out, err := m.port.Dashboard(context.Background())
		return LoadedMsg{Dashboard: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = msg.Height
		m.body.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Dashboard
		}
		m.body.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vCmd tea.Cmd
	m.body, vCmd = m.body.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard…")
	}
	return m.body.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Hot.Render("dashboard: " + m.err.Error())
	}
	d := m.data
	barWidth := m.width/3 - 12
	if barWidth < 10 {
		barWidth = 10
	}
	heat := func(level int, s string) string { return theme.Heat(level).Render(s) }
	bars := func(level int, s string) string {
		if level == 0 {
			return theme.Avg.Render(s)
		}
		return theme.Bar.Render(s)
	}

	sections := []string{
		theme.Title.Render("Summary") + "  " + theme.Muted.Render("as of "+d.AsOf) + "\n" + RenderSummary(d.Summary),
		theme.Title.Render(fmt.Sprintf("Activity %s → %s", d.Calendar.Start, d.Calendar.End)) + "\n" + RenderHeatmap(d.Calendar, heat),
		section("Applications per week", RenderBars(WeeklyBars(lastN(d.Weekly, 12)), barWidth, bars)),
		section("Pipeline", RenderBars(FunnelBars(d.Funnel), barWidth, bars)),
		section("Top companies", RenderBars(CompanyBars(d.TopCompanies), barWidth, bars)),
		section("Top role terms", RenderBars(TermBars(d.TopRoleTerms), barWidth, bars)),
	}
	if d.ResponseLag.Count > 0 {
		lag := fmt.Sprintf("%d responses  median %.1fd  min %dd  max %dd", d.ResponseLag.Count, d.ResponseLag.Median, d.ResponseLag.Min, d.ResponseLag.Max)
		sections = append(sections, section("Time to first response", lag))
	}
	return strings.Join(sections, "\n\n")
}

func section(title, body string) string {
	if body == "" {
		body = theme.Muted.Render("no data yet")
	}
	return theme.Title.Render(title) + "\n" + body
}

func lastN(rows []dto.WeekRowOutput, n int) []dto.WeekRowOutput {
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
