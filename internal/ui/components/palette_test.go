package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"jobtrack/internal/ui/components"
)

func typeText(p components.Palette, text string) components.Palette {
	for _, r := range text {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestPaletteSubmitAndHistory(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeText(p, "status 3 offer")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("expected palette to close on enter")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "status 3 offer" {
		t.Fatalf("expected submit msg, got %#v", cmd())
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if p.Value() != "status 3 offer" {
		t.Fatalf("expected history recall, got %q", p.Value())
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.Value() != "" {
		t.Fatalf("expected empty input past the newest entry, got %q", p.Value())
	}
}

func TestPaletteCancel(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p = typeText(p, "refr")
	if p.View() == "" {
		t.Fatalf("expected palette view while open")
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("expected palette to close on esc")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel msg")
	}
}

func TestSuggestMatchesVerbPrefix(t *testing.T) {
	t.Parallel()
	got := components.Suggest("re")
	if len(got) != 2 || got[0].Usage != "respond [id] [date]" || got[1].Usage != "refresh" {
		t.Fatalf("expected respond and refresh, got %+v", got)
	}
	if got := components.Suggest("status 4 off"); len(got) != 1 || got[0].Usage != "status [id] <status>" {
		t.Fatalf("expected only status, got %+v", got)
	}
	if got := components.Suggest(""); len(got) != 4 {
		t.Fatalf("expected 4 suggestions for an empty line, got %d", len(got))
	}
	if got := components.Suggest("launch"); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %+v", got)
	}
}

func TestPaletteHistoryStopsAtOldest(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	for _, line := range []string{"refresh", "dashboard"} {
		p.Open()
		p = typeText(p, line)
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	p.Open()
	for i := 0; i < 3; i++ {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if p.Value() != "refresh" {
		t.Fatalf("expected oldest entry, got %q", p.Value())
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.Value() != "dashboard" {
		t.Fatalf("expected newer entry, got %q", p.Value())
	}
}
