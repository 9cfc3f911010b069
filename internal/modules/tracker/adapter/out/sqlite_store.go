package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	trackerout "jobtrack/internal/modules/tracker/port/out"

	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	name:        "sqlite",
	idColumn:    "INTEGER PRIMARY KEY AUTOINCREMENT",
	bind:        func(int) string { return "?" },
	columnQuery: `SELECT COUNT(*) FROM pragma_table_info('applications') WHERE name = ?`,
}

// NewSQLiteStore opens (creating if needed) the database file at dbPath.
func NewSQLiteStore(ctx context.Context, dbPath string) (trackerout.ApplicationStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single connection; concurrent writers would see SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{`PRAGMA foreign_keys = ON`, `PRAGMA busy_timeout = 5000`} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	store := &SQLStore{db: db, d: sqliteDialect}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}
