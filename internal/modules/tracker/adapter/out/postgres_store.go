package out

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	trackerout "jobtrack/internal/modules/tracker/port/out"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var postgresDialect = dialect{
	name:        "postgres",
	idColumn:    "BIGSERIAL PRIMARY KEY",
	bind:        func(n int) string { return "$" + strconv.Itoa(n) },
	columnQuery: `SELECT COUNT(*) FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = 'applications' AND column_name = $1`,
}

// NewPostgresStore connects through the pgx database/sql driver.
func NewPostgresStore(ctx context.Context, url string) (trackerout.ApplicationStore, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	store := &SQLStore{db: db, d: postgresDialect}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}
