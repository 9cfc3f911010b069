package out

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"jobtrack/internal/modules/tracker/domain"
	apperrors "jobtrack/internal/platform/errors"
)

// dialect captures the few places SQLite and Postgres disagree.
type dialect struct {
	name        string
	idColumn    string
	bind        func(n int) string
	columnQuery string
}

// SQLStore implements the application store over database/sql. Dates are
// stored as YYYY-MM-DD text so range filters compare lexically.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

const selectApplications = `SELECT id, company, role, date_applied, status, COALESCE(response_date, ''), COALESCE(import_batch, ''), created_at FROM applications`

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS applications (
  id %s,
  company TEXT NOT NULL,
  role TEXT NOT NULL,
  date_applied TEXT NOT NULL,
  status TEXT NOT NULL,
  response_date TEXT,
  import_batch TEXT,
  created_at TEXT NOT NULL DEFAULT '',
  CONSTRAINT status_allowed CHECK (status IN ('Applied', 'OA', 'Interview', 'Offer', 'Rejected'))
)`, s.d.idColumn)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create applications table (%s): %w", s.d.name, err)
	}

	// Databases created before responses and batches were tracked lack these.
	for _, col := range []struct{ name, ddl string }{
		{"response_date", "TEXT"},
		{"import_batch", "TEXT"},
		{"created_at", "TEXT NOT NULL DEFAULT ''"},
	} {
		exists, err := s.hasColumn(ctx, col.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE applications ADD COLUMN %s %s`, col.name, col.ddl)); err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_applications_status_date ON applications(status, date_applied)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_company ON applications(company)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_import_batch ON applications(import_batch)`,
	}
	for _, stmt := range indexes {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) hasColumn(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, s.d.columnQuery, name).Scan(&n); err != nil {
		return false, fmt.Errorf("inspect applications columns: %w", err)
	}
	return n > 0, nil
}

func (s *SQLStore) insertStmt() string {
	return fmt.Sprintf(`INSERT INTO applications (company, role, date_applied, status, response_date, import_batch, created_at) VALUES (%s)`, s.binds(7))
}

func (s *SQLStore) Insert(ctx context.Context, app domain.Application) (int64, error) {
	var appID int64
	err := s.db.QueryRowContext(ctx, s.insertStmt()+` RETURNING id`, insertArgs(app)...).Scan(&appID)
	if err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}
	return appID, nil
}

// InsertBatch writes apps in one transaction; either all rows land or none.
func (s *SQLStore) InsertBatch(ctx context.Context, apps []domain.Application) (int, error) {
	if len(apps) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.insertStmt())
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, app := range apps {
		if _, err := stmt.ExecContext(ctx, insertArgs(app)...); err != nil {
			return 0, fmt.Errorf("insert application %q: %w", app.Company, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert batch: %w", err)
	}
	return len(apps), nil
}

func (s *SQLStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Application, error) {
	q := whereBuilder{bind: s.d.bind}
	if filter.Status != "" {
		q.add("status = ?", string(filter.Status))
	}
	if filter.DateStart != "" {
		q.add("date_applied >= ?", filter.DateStart)
	}
	if filter.DateEnd != "" {
		q.add("date_applied <= ?", filter.DateEnd)
	}
	if filter.CompanySubstr != "" {
		q.add(`LOWER(company) LIKE LOWER(?) ESCAPE '\'`, likePattern(filter.CompanySubstr))
	}
	if filter.RoleSubstr != "" {
		q.add(`LOWER(role) LIKE LOWER(?) ESCAPE '\'`, likePattern(filter.RoleSubstr))
	}
	if filter.ImportBatch != "" {
		q.add("import_batch = ?", filter.ImportBatch)
	}

	stmt := selectApplications + q.where() + " ORDER BY id ASC"
	switch {
	case filter.Limit > 0:
		stmt += " LIMIT " + strconv.Itoa(filter.Limit)
	case filter.Limit == 0:
		stmt += " LIMIT " + strconv.Itoa(domain.DefaultListLimit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Application, 0)
	for rows.Next() {
		var (
			app       domain.Application
			status    string
			createdAt string
		)
		if err := rows.Scan(&app.ID, &app.Company, &app.Role, &app.DateApplied, &status, &app.ResponseDate, &app.ImportBatch, &createdAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		app.Status = domain.Status(status)
		if createdAt != "" {
			if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
				app.CreatedAt = parsed
			}
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

func (s *SQLStore) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	stmt := fmt.Sprintf(`UPDATE applications SET status = %s WHERE id = %s`, s.d.bind(1), s.d.bind(2))
	return s.execOne(ctx, "update status", stmt, string(status), id)
}

func (s *SQLStore) SetResponseDate(ctx context.Context, id int64, date string) error {
	stmt := fmt.Sprintf(`UPDATE applications SET response_date = %s WHERE id = %s`, s.d.bind(1), s.d.bind(2))
	return s.execOne(ctx, "record response", stmt, nullString(date), id)
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	stmt := fmt.Sprintf(`DELETE FROM applications WHERE id = %s`, s.d.bind(1))
	return s.execOne(ctx, "delete application", stmt, id)
}

func (s *SQLStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM applications`)
	if err != nil {
		return 0, fmt.Errorf("delete all applications: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM applications WHERE import_batch = %s`, s.d.bind(1)), batchID)
	if err != nil {
		return 0, fmt.Errorf("delete import batch: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) execOne(ctx context.Context, op, stmt string, args ...any) error {
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: application %d", apperrors.ErrNotFound, args[len(args)-1])
	}
	return nil
}

func (s *SQLStore) binds(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.d.bind(i + 1)
	}
	return strings.Join(parts, ", ")
}

type whereBuilder struct {
	bind    func(n int) string
	clauses []string
	args    []any
}

// add appends a condition whose single "?" is replaced by the dialect's
// placeholder for the next argument.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.Replace(cond, "?", w.bind(len(w.args)), 1))
}

func (w *whereBuilder) where() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func insertArgs(app domain.Application) []any {
	createdAt := ""
	if !app.CreatedAt.IsZero() {
		createdAt = app.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return []any{
		app.Company,
		app.Role,
		app.DateApplied,
		string(app.Status),
		nullString(app.ResponseDate),
		nullString(app.ImportBatch),
		createdAt,
	}
}

func likePattern(substr string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(substr)
	return "%" + escaped + "%"
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
