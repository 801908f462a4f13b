package logging

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresSink inserts one row per record into a log table. The table needs
// the columns message (text), level (text), call_tree (text) and ts
// (timestamptz).
type PostgresSink struct {
	db    *sqlx.DB
	table string
}

// OpenPostgres opens a connection pool suitable for NewPostgresSink. The
// connection is verified with a ping.
func OpenPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// NewPostgresSink builds a sink writing to the named table.
func NewPostgresSink(db *sqlx.DB, table string) *PostgresSink {
	return &PostgresSink{db: db, table: table}
}

// Write inserts the record.
func (s *PostgresSink) Write(rec *Record) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (message, level, call_tree, ts) VALUES (:message, :level, :call_tree, :ts)`,
		s.table,
	)
	_, err := s.db.NamedExec(query, map[string]interface{}{
		"message":   rec.Message,
		"level":     rec.Level.String(),
		"call_tree": rec.CallPath,
		"ts":        rec.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to insert into %s: %w", ErrSinkWrite, s.table, err)
	}
	return nil
}
