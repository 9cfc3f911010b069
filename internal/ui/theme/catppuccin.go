package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Teal     = lipgloss.Color("#94e2d5")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Bar   = lipgloss.NewStyle().Foreground(Lavender)
	Avg   = lipgloss.NewStyle().Foreground(Yellow)
)

// heat runs from an empty day to the busiest day of the window.
var heat = [...]lipgloss.Color{Surface0, lipgloss.Color("#40634a"), lipgloss.Color("#5e8f68"), lipgloss.Color("#83bb8a"), Green}

// HeatLevels is the number of distinct heatmap shades including "none".
const HeatLevels = len(heat)

func Heat(level int) lipgloss.Style {
	if level < 0 {
		level = 0
	}
	if level >= len(heat) {
		level = len(heat) - 1
	}
	return lipgloss.NewStyle().Foreground(heat[level])
}

func Status(status string) lipgloss.Style {
	switch status {
	case "Applied":
		return lipgloss.NewStyle().Foreground(Sapphire)
	case "OA":
		return lipgloss.NewStyle().Foreground(Teal)
	case "Interview":
		return lipgloss.NewStyle().Foreground(Mauve)
	case "Offer":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "Rejected":
		return lipgloss.NewStyle().Foreground(Red)
	default:
		return Muted
	}
}
