package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jobtrack/internal/ui/theme"
)

// PaletteSubmitMsg carries the trimmed command line the user confirmed.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command documents one palette verb. The app model owns the behaviour.
type Command struct {
	Usage string
	About string
}

// Commands lists the verbs understood by the app model, in display order.
var Commands = []Command{
	{Usage: "status [id] <status>", About: "move an application to Applied, OA, Interview, Offer or Rejected"},
	{Usage: "respond [id] [date]", About: "record the first reply (default today)"},
	{Usage: "delete [id]", About: "remove an application"},
	{Usage: "filter [text]", About: "show companies containing text; empty clears"},
	{Usage: "refresh", About: "reload dashboard and list"},
	{Usage: "dashboard", About: "switch to the charts"},
	{Usage: "applications", About: "switch to the list"},
}

const maxSuggestions = 4

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	usageStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
	aboutStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Suggest returns the commands whose verb starts with the first word of line.
func Suggest(line string) []Command {
	verb := ""
	if fields := strings.Fields(strings.ToLower(line)); len(fields) > 0 {
		verb = fields[0]
	}
	var out []Command
	for _, c := range Commands {
		if verb != "" && !strings.HasPrefix(c.Usage, verb) {
			continue
		}
		out = append(out, c)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// Palette is the ":" prompt. Submitted lines are kept for up/down recall.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	in := textinput.New()
	in.Placeholder = "status 12 interview"
	in.CharLimit = 200
	return Palette{input: in}
}

func (p Palette) Visible() bool { return p.visible }

func (p Palette) Value() string { return p.input.Value() }

func (p *Palette) SetWidth(w int) { p.width = w }

// Open shows an empty prompt positioned after the newest history entry.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// step moves through history by delta; moving past the newest entry clears
// the prompt.
func (p *Palette) step(delta int) {
	next := p.recall + delta
	if next < 0 || len(p.history) == 0 {
		return
	}
	if next >= len(p.history) {
		p.recall = len(p.history)
		p.input.SetValue("")
		return
	}
	p.recall = next
	p.input.SetValue(p.history[next])
	p.input.CursorEnd()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			line := strings.TrimSpace(p.input.Value())
			p.close()
			if line != "" {
				p.history = append(p.history, line)
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case tea.KeyUp:
			p.step(-1)
			return p, nil
		case tea.KeyDown:
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Run"), ": " + p.input.View()}
	if suggestions := Suggest(p.input.Value()); len(suggestions) > 0 {
		lines = append(lines, "")
		for _, c := range suggestions {
			lines = append(lines, usageStyle.Render(c.Usage)+"  "+aboutStyle.Render(c.About))
		}
	}
	width := p.width
	if width < 20 {
		width = 72
	}
	return frameStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}
