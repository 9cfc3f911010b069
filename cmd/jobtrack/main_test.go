package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "jobtrack.yaml")
	body := "db_path: " + filepath.Join(dir, "apps.db") + "\ntimezone: UTC\nlog_level: error\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestAddListAndExport(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t)

	out := run(t, cfg, "add", "--company", "Acme", "--role", "Backend Engineer", "--date", "2025-01-06", "--status", "phone screen")
	if !strings.Contains(out, "added #1 Acme / Backend Engineer (2025-01-06, Interview)") {
		t.Fatalf("unexpected add output %q", out)
	}
	run(t, cfg, "add", "--company", "Globex", "--role", "Data Engineer", "--date", "2025-01-07")

	var apps []map[string]any
	if err := json.Unmarshal([]byte(run(t, cfg, "list", "--format", "json")), &apps); err != nil {
		t.Fatalf("decode list json: %v", err)
	}
	if len(apps) != 2 || apps[1]["company"] != "Globex" || apps[1]["status"] != "Applied" {
		t.Fatalf("unexpected list %v", apps)
	}

	table := run(t, cfg, "list", "--company", "acm")
	if !strings.Contains(table, "Acme") || strings.Contains(table, "Globex") {
		t.Fatalf("expected only Acme in filtered table, got %q", table)
	}

	csv := run(t, cfg, "export", "-")
	want := "id,company,role,date_applied,status,response_date\n" +
		"1,Acme,Backend Engineer,2025-01-06,Interview,\n" +
		"2,Globex,Data Engineer,2025-01-07,Applied,\n"
	if csv != want {
		t.Fatalf("expected export\n%s\ngot\n%s", want, csv)
	}
}

func TestImportThenUndoBatch(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t)
	csvPath := filepath.Join(t.TempDir(), "apps.csv")
	body := "Company;Position;Applied On;Stage\nAcme;SRE;2025-02-01;submitted\nInitech;QA;not a date;offer\n"
	if err := os.WriteFile(csvPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := run(t, cfg, "import", csvPath)
	if !strings.Contains(out, "imported 1 rows (skipped 1)") {
		t.Fatalf("unexpected import output %q", out)
	}
	var batch string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "undo with: jobtrack delete --batch ") {
			batch = strings.TrimPrefix(line, "undo with: jobtrack delete --batch ")
		}
	}
	if batch == "" {
		t.Fatalf("expected batch id in output %q", out)
	}

	out = run(t, cfg, "delete", "--batch", batch)
	if !strings.Contains(out, "deleted 1 applications") {
		t.Fatalf("unexpected delete output %q", out)
	}
	if got := run(t, cfg, "list"); !strings.Contains(got, "no applications") {
		t.Fatalf("expected empty list, got %q", got)
	}
}

func TestDeleteAllNeedsConfirmation(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "delete", "--all"})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
}

func TestStatsFormats(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t)
	run(t, cfg, "seed", "--rows", "20", "--seed", "11")

	var summary struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal([]byte(run(t, cfg, "stats", "summary", "--format", "json")), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Total != 20 {
		t.Fatalf("expected total 20, got %d", summary.Total)
	}

	var daily []struct {
		Day string `yaml:"day"`
		Cum int    `yaml:"cum"`
	}
	if err := yaml.Unmarshal([]byte(run(t, cfg, "stats", "daily", "--format", "yaml")), &daily); err != nil {
		t.Fatalf("decode daily: %v", err)
	}
	if len(daily) == 0 || daily[len(daily)-1].Cum != 20 {
		t.Fatalf("expected running total to reach 20, got %+v", daily)
	}

	if out := run(t, cfg, "stats", "funnel"); !strings.HasPrefix(out, "STAGE") {
		t.Fatalf("expected table header, got %q", out)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	err := render(&bytes.Buffer{}, "xml", nil, func(*table) {})
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
