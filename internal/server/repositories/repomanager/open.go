package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedDSN = errors.New("unsupported database dsn")

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// Open picks a backend from the DSN scheme, connects, and applies
// migrations. postgres:// and postgresql:// go to pgx; sqlite:<path> and
// file:<path> go to SQLite. The caller owns the returned *sql.DB and must
// close it.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	driver, source, m, err := resolve(dsn)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s db: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s db: %w", driver, err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, m, nil
}

func resolve(dsn string) (driver, source string, m RepositoryManager, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn, NewPostgresRepositoryManager(), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return "sqlite", withPragmas(strings.TrimPrefix(dsn, "sqlite:")), NewSQLiteRepositoryManager(), nil
	case strings.HasPrefix(dsn, "file:"):
		return "sqlite", withPragmas(dsn), NewSQLiteRepositoryManager(), nil
	default:
		return "", "", nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, redact(dsn))
	}
}

func withPragmas(source string) string {
	if strings.Contains(source, "_pragma=") {
		return source
	}
	if strings.Contains(source, "?") {
		return source + "&" + sqlitePragmas
	}
	return source + "?" + sqlitePragmas
}

// redact keeps the scheme only, DSNs may carry credentials.
func redact(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i] + "://..."
	}
	if len(dsn) > 8 {
		return dsn[:8] + "..."
	}
	return dsn
}
