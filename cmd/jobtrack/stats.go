package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jobtrack/internal/bootstrap"
	"jobtrack/internal/modules/analytics/dto"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func bindFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", formatTable, "output format: table|json|yaml")
}

type table struct {
	w *tabwriter.Writer
}

func (t *table) header(cols ...string) {
	_, _ = fmt.Fprintln(t.w, strings.Join(cols, "\t"))
}

func (t *table) row(vals ...any) {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// render writes v as JSON or YAML, or calls fill to lay out a table.
func render(w io.Writer, format string, v any, fill func(t *table)) error {
	switch strings.ToLower(format) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatTable, "":
		t := &table{w: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
		fill(t)
		return t.w.Flush()
	default:
		return fmt.Errorf("unknown --format %q (want table, json or yaml)", format)
	}
}

// statsCmd builds one stats subcommand. run fetches the value and returns the
// table layout for it.
func statsCmd(configPath *string, use, short string, run func(cmd *cobra.Command, app *bootstrap.App) (any, func(t *table), error)) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				v, fill, err := run(cmd, app)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), format, v, fill)
			})
		},
	}
	bindFormatFlag(cmd, &format)
	return cmd
}

func newStatsCmd(configPath *string) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Analytics over every recorded application"}

	stats.AddCommand(statsCmd(configPath, "dashboard", "Every dashboard view in one document", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		out, err := app.AnalyticsCLI.Dashboard(cmd.Context())
		return out, func(t *table) {
			summaryTable(t, out.Summary)
			t.row("as of", out.AsOf)
		}, err
	}))

	stats.AddCommand(statsCmd(configPath, "summary", "Totals and recent activity", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		out, err := app.AnalyticsCLI.Summary(cmd.Context())
		return out, func(t *table) { summaryTable(t, out) }, err
	}))

	var window int
	weekly := statsCmd(configPath, "weekly", "Applications per week with a moving average", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		rows, err := app.AnalyticsCLI.Weekly(cmd.Context(), window)
		return rows, func(t *table) {
			t.header("WEEK", "APPS", "AVG")
			for _, r := range rows {
				t.row(r.WeekStart, r.Apps, fmt.Sprintf("%.2f", r.MovingAvg))
			}
		}, err
	})
	weekly.Flags().IntVar(&window, "window", 0, "moving average window in weeks (default from config)")
	stats.AddCommand(weekly)

	var calDays int
	var calEnd string
	calendar := statsCmd(configPath, "calendar", "Daily counts laid out as a weekday by week grid", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		out, err := app.AnalyticsCLI.Calendar(cmd.Context(), calDays, calEnd)
		return out, func(t *table) {
			t.header("DATE", "DOW", "WEEK", "N")
			for _, c := range out.Cells {
				if c.N > 0 {
					t.row(c.Date, c.Weekday, c.WeekIndex, c.N)
				}
			}
		}, err
	})
	calendar.Flags().IntVar(&calDays, "days", 0, "window length in days (default from config)")
	calendar.Flags().StringVar(&calEnd, "end", "", "last day of the window, YYYY-MM-DD (default today)")
	stats.AddCommand(calendar)

	var k int
	companies := statsCmd(configPath, "companies", "Companies with the most applications", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		rows, err := app.AnalyticsCLI.TopCompanies(cmd.Context(), k)
		return rows, func(t *table) {
			t.header("COMPANY", "COUNT")
			for _, r := range rows {
				t.row(r.Company, r.Count)
			}
		}, err
	})
	companies.Flags().IntVar(&k, "k", 0, "how many companies (default from config)")
	stats.AddCommand(companies)

	var n, ngramMin, ngramMax int
	terms := statsCmd(configPath, "terms", "Most frequent role title n-grams", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		rows, err := app.AnalyticsCLI.TopRoleTerms(cmd.Context(), n, ngramMin, ngramMax)
		return rows, func(t *table) {
			t.header("TERM", "COUNT")
			for _, r := range rows {
				t.row(r.Term, r.Count)
			}
		}, err
	})
	terms.Flags().IntVar(&n, "n", 0, "how many terms (default from config)")
	terms.Flags().IntVar(&ngramMin, "min", 0, "shortest n-gram (default from config)")
	terms.Flags().IntVar(&ngramMax, "max", 0, "longest n-gram (default from config)")
	stats.AddCommand(terms)

	var stages []string
	funnel := statsCmd(configPath, "funnel", "Counts per pipeline stage", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		rows, err := app.AnalyticsCLI.Funnel(cmd.Context(), stages)
		return rows, func(t *table) {
			t.header("STAGE", "N")
			for _, r := range rows {
				t.row(r.Stage, r.N)
			}
		}, err
	})
	funnel.Flags().StringSliceVar(&stages, "stages", nil, "ordered canonical stages (default Applied,OA,Interview,Offer)")
	stats.AddCommand(funnel)

	stats.AddCommand(statsCmd(configPath, "weekday", "Applications by weekday and status", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		rows, err := app.AnalyticsCLI.WeekdayStatus(cmd.Context())
		return rows, func(t *table) {
			t.header("WEEKDAY", "STATUS", "N")
			for _, r := range rows {
				t.row(r.Weekday, r.Status, r.N)
			}
		}, err
	}))

	stats.AddCommand(statsCmd(configPath, "lag", "Days from applying to first response", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		out, err := app.AnalyticsCLI.ResponseLag(cmd.Context())
		return out, func(t *table) {
			t.header("RESPONSES", "MIN", "MEDIAN", "MAX")
			t.row(out.Count, out.Min, fmt.Sprintf("%.1f", out.Median), out.Max)
		}, err
	}))

	stats.AddCommand(statsCmd(configPath, "daily", "Applications per day with a running total", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		rows, err := app.AnalyticsCLI.Daily(cmd.Context())
		return rows, func(t *table) {
			t.header("DAY", "N", "TOTAL")
			for _, r := range rows {
				t.row(r.Day, r.N, r.Cum)
			}
		}, err
	}))

	var status string
	count := statsCmd(configPath, "count --status <status>", "Applications with one status", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		v, err := app.AnalyticsCLI.StatusCount(cmd.Context(), status)
		return map[string]any{"status": status, "count": v}, func(t *table) { t.row(status, v) }, err
	})
	count.Flags().StringVar(&status, "status", "", "canonical status: Applied, OA, Interview, Offer or Rejected")
	_ = count.MarkFlagRequired("status")
	stats.AddCommand(count)

	var winDays int
	var winEnd string
	recent := statsCmd(configPath, "recent", "Applications in a trailing window", func(cmd *cobra.Command, app *bootstrap.App) (any, func(*table), error) {
		v, err := app.AnalyticsCLI.CountInWindow(cmd.Context(), winDays, winEnd)
		return map[string]any{"days": winDays, "end": winEnd, "count": v}, func(t *table) {
			t.row(fmt.Sprintf("last %dd", winDays), v)
		}, err
	})
	recent.Flags().IntVar(&winDays, "days", 7, "window length in days")
	recent.Flags().StringVar(&winEnd, "end", "", "last day of the window, YYYY-MM-DD (default today)")
	stats.AddCommand(recent)

	return stats
}

func summaryTable(t *table, s dto.SummaryOutput) {
	t.row("total", s.Total)
	t.row(fmt.Sprintf("last %dd", s.RecentDays), s.Recent)
	t.row("applied", s.Applied)
	t.row("rejected", s.Rejected)
	if s.InvalidDates > 0 {
		t.row("invalid dates", s.InvalidDates)
	}
}
