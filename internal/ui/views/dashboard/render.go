package dashboard

import (
	"fmt"
	"strings"

	"jobtrack/internal/modules/analytics/dto"
)

// Styler decorates one rendered fragment. Tests pass Plain.
type Styler func(level int, s string) string

func Plain(_ int, s string) string { return s }

var heatGlyphs = []string{"·", "░", "▒", "▓", "█"}

var weekdayLabels = [7]string{"Mon", "", "Wed", "", "Fri", "", "Sun"}

const (
	labelWidth = 4
	cellWidth  = 2
)

// HeatLevel buckets n into 0..levels-1 relative to max. Any non-zero count
// gets at least level 1.
func HeatLevel(n, max, levels int) int {
	if n <= 0 || max <= 0 || levels < 2 {
		return 0
	}
	level := (n*(levels-1) + max - 1) / max
	if level >= levels {
		level = levels - 1
	}
	return level
}

// RenderHeatmap draws the calendar as seven weekday rows by week columns with
// a month header. Days outside the window are blank.
func RenderHeatmap(cal dto.CalendarOutput, style Styler) string {
	if len(cal.Cells) == 0 {
		return ""
	}
	if style == nil {
		style = Plain
	}
	weeks := cal.Weeks
	grid := make([][]int, 7)
	for d := range grid {
		grid[d] = make([]int, weeks)
		for w := range grid[d] {
			grid[d][w] = -1
		}
	}
	for _, c := range cal.Cells {
		if c.Weekday < 0 || c.Weekday > 6 || c.WeekIndex < 0 || c.WeekIndex >= weeks {
			continue
		}
		grid[c.Weekday][c.WeekIndex] = HeatLevel(c.N, cal.Max, len(heatGlyphs))
	}

	var sb strings.Builder
	sb.WriteString(monthHeader(cal.Ticks, weeks))
	sb.WriteString("\n")
	for d := 0; d < 7; d++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%-*s", labelWidth, weekdayLabels[d]))
		for w := 0; w < weeks; w++ {
			level := grid[d][w]
			if level < 0 {
				row.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			row.WriteString(style(level, heatGlyphs[level]))
			row.WriteString(strings.Repeat(" ", cellWidth-1))
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
		if d < 6 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func monthHeader(ticks []dto.MonthTickOutput, weeks int) string {
	var sb strings.Builder
	written := 0
	for _, t := range ticks {
		pos := labelWidth + t.WeekIndex*cellWidth
		if t.WeekIndex >= weeks || (written > 0 && pos <= written) {
			continue
		}
		sb.WriteString(strings.Repeat(" ", pos-written))
		sb.WriteString(t.Label)
		written = pos + len(t.Label)
	}
	return sb.String()
}

type BarRow struct {
	Label string
	Value float64
	Note  string
}

// RenderBars draws one horizontal bar per row scaled to width cells.
func RenderBars(rows []BarRow, width int, style Styler) string {
	if len(rows) == 0 {
		return ""
	}
	if style == nil {
		style = Plain
	}
	if width < 1 {
		width = 1
	}
	labelW, maxVal := 0, 0.0
	for _, r := range rows {
		if n := len([]rune(r.Label)); n > labelW {
			labelW = n
		}
		if r.Value > maxVal {
			maxVal = r.Value
		}
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		filled := 0
		if maxVal > 0 {
			filled = int(r.Value/maxVal*float64(width) + 0.5)
		}
		if r.Value > 0 && filled == 0 {
			filled = 1
		}
		bar := style(1, strings.Repeat("█", filled))
		line := fmt.Sprintf("%-*s %s%s %s", labelW, r.Label, bar, strings.Repeat(" ", width-filled), formatValue(r.Value))
		if r.Note != "" {
			line += "  " + style(0, r.Note)
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func WeeklyBars(rows []dto.WeekRowOutput) []BarRow {
	out := make([]BarRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BarRow{Label: r.WeekStart, Value: float64(r.Apps), Note: fmt.Sprintf("avg %.1f", r.MovingAvg)})
	}
	return out
}

func CompanyBars(rows []dto.CompanyCountOutput) []BarRow {
	out := make([]BarRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BarRow{Label: r.Company, Value: float64(r.Count)})
	}
	return out
}

func TermBars(rows []dto.TermCountOutput) []BarRow {
	out := make([]BarRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BarRow{Label: r.Term, Value: float64(r.Count)})
	}
	return out
}

func FunnelBars(rows []dto.StageCountOutput) []BarRow {
	out := make([]BarRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BarRow{Label: r.Stage, Value: float64(r.N)})
	}
	return out
}

// RenderSummary is the one-line headline shown above the charts.
func RenderSummary(s dto.SummaryOutput) string {
	line := fmt.Sprintf("Total %d   Last %dd %d   Applied %d   Rejected %d", s.Total, s.RecentDays, s.Recent, s.Applied, s.Rejected)
	if s.InvalidDates > 0 {
		line += fmt.Sprintf("   (%d without a valid date)", s.InvalidDates)
	}
	return line
}
