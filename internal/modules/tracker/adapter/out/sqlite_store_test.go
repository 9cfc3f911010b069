package out_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	trackerout "jobtrack/internal/modules/tracker/adapter/out"
	"jobtrack/internal/modules/tracker/domain"
	apperrors "jobtrack/internal/platform/errors"

	_ "modernc.org/sqlite"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "job_apps.db")
}

func app(company, role, date string, status domain.Status) domain.Application {
	return domain.Application{
		Company:     company,
		Role:        role,
		DateApplied: date,
		Status:      status,
		CreatedAt:   time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStoreCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := tempDBPath(t)
	store, err := trackerout.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()

	first, err := store.Insert(ctx, app("Acme", "Data Scientist", "2025-01-02", domain.StatusApplied))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := store.Insert(ctx, app("Globex", "Backend Engineer", "2025-01-05", domain.StatusInterview))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}

	all, err := store.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != first || all[0].Company != "Acme" {
		t.Fatalf("unexpected rows %+v", all)
	}
	if !all[0].CreatedAt.Equal(time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected created_at round trip, got %s", all[0].CreatedAt)
	}

	if err := store.UpdateStatus(ctx, first, domain.StatusOffer); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := store.SetResponseDate(ctx, first, "2025-01-09"); err != nil {
		t.Fatalf("set response: %v", err)
	}
	rows, _ := store.List(ctx, domain.ListFilter{Status: domain.StatusOffer})
	if len(rows) != 1 || rows[0].ResponseDate != "2025-01-09" {
		t.Fatalf("expected updated row, got %+v", rows)
	}

	if err := store.UpdateStatus(ctx, 999, domain.StatusOffer); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Delete(ctx, 999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Delete(ctx, second); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err := store.DeleteAll(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 row deleted, got %d (%v)", n, err)
	}
}

func TestSQLiteStoreListFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := tempDBPath(t)
	store, err := trackerout.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()

	batch := []domain.Application{
		app("Acme Corp", "Data Scientist Intern", "2025-01-01", domain.StatusApplied),
		app("acme labs", "Software Engineer", "2025-01-10", domain.StatusRejected),
		app("Initech", "Data_Analyst", "2025-01-20", domain.StatusApplied),
		app("100% Co", "Analyst", "2025-02-01", domain.StatusOA),
	}
	for i := range batch {
		batch[i].ImportBatch = "batch-1"
	}
	if n, err := store.InsertBatch(ctx, batch); err != nil || n != 4 {
		t.Fatalf("insert batch: %d %v", n, err)
	}
	if _, err := store.Insert(ctx, app("Hooli", "Data Engineer", "2025-01-15", domain.StatusApplied)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	cases := []struct {
		name   string
		filter domain.ListFilter
		want   int
	}{
		{"company substring is case-insensitive", domain.ListFilter{CompanySubstr: "ACME"}, 2},
		{"role substring", domain.ListFilter{RoleSubstr: "data"}, 3},
		{"underscore is literal", domain.ListFilter{RoleSubstr: "a_a"}, 1},
		{"percent is literal", domain.ListFilter{CompanySubstr: "0%"}, 1},
		{"date range inclusive", domain.ListFilter{DateStart: "2025-01-10", DateEnd: "2025-01-20"}, 3},
		{"status", domain.ListFilter{Status: domain.StatusApplied}, 3},
		{"status and date", domain.ListFilter{Status: domain.StatusApplied, DateEnd: "2025-01-15"}, 2},
		{"import batch", domain.ListFilter{ImportBatch: "batch-1"}, 4},
		{"limit", domain.ListFilter{Limit: 2}, 2},
		{"unlimited", domain.ListFilter{Limit: domain.Unlimited}, 5},
	}
	for _, tc := range cases {
		rows, err := store.List(ctx, tc.filter)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(rows) != tc.want {
			t.Fatalf("%s: expected %d rows, got %d", tc.name, tc.want, len(rows))
		}
		for i := 1; i < len(rows); i++ {
			if rows[i].ID <= rows[i-1].ID {
				t.Fatalf("%s: rows not ordered by id", tc.name)
			}
		}
	}

	n, err := store.DeleteBatch(ctx, "batch-1")
	if err != nil || n != 4 {
		t.Fatalf("expected 4 rows removed, got %d (%v)", n, err)
	}
	rest, _ := store.List(ctx, domain.ListFilter{})
	if len(rest) != 1 || rest[0].Company != "Hooli" {
		t.Fatalf("expected only the manual row to remain, got %+v", rest)
	}
}

func TestSQLiteStoreMigratesLegacyTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "job_apps.db")

	legacy, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	_, err = legacy.Exec(`
CREATE TABLE applications (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  role TEXT NOT NULL,
  date_applied TEXT NOT NULL,
  status TEXT NOT NULL,
  CONSTRAINT status_allowed CHECK (status IN ('Applied', 'OA', 'Interview', 'Offer', 'Rejected'))
)`)
	if err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := legacy.Exec(`INSERT INTO applications (company, role, date_applied, status) VALUES ('Yash Inc.', 'Data Scientist', '2024-12-01', 'Applied')`); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}
	_ = legacy.Close()

	store, err := trackerout.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		t.Fatalf("open migrated store: %v", err)
	}
	defer store.Close()
	rows, err := store.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ResponseDate != "" || rows[0].ImportBatch != "" || !rows[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected legacy row %+v", rows)
	}
	if err := store.SetResponseDate(ctx, rows[0].ID, "2024-12-10"); err != nil {
		t.Fatalf("set response on migrated table: %v", err)
	}
}

func TestSQLiteStoreRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := tempDBPath(t)
	store, err := trackerout.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()
	if _, err := store.Insert(ctx, app("Acme", "Engineer", "2025-01-01", "Ghosted")); err == nil {
		t.Fatalf("expected CHECK constraint to reject status")
	}
}
