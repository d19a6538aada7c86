package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteJournal implements Journal using modernc.org/sqlite.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// A single connection keeps ":memory:" databases from splitting per conn.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteJournal{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS tool_journal (
	id          TEXT PRIMARY KEY,
	tool        TEXT NOT NULL,
	arguments   TEXT NOT NULL,
	result      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tool_journal_tool ON tool_journal(tool);
CREATE INDEX IF NOT EXISTS idx_tool_journal_created_at ON tool_journal(created_at);
`

func (s *SQLiteJournal) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteJournal) Close() error {
	return s.db.Close()
}

func (s *SQLiteJournal) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	args, err := encodeArgs(e.Arguments)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tool_journal (id, tool, arguments, result, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Tool, args, e.Result, e.Duration.Milliseconds(), e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return eris.Wrapf(err, "sqlite: insert journal entry %s", e.ID)
}

func (s *SQLiteJournal) List(ctx context.Context, f Filter) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, arguments, result, duration_ms, created_at FROM tool_journal
		WHERE (? = '' OR tool = ?) ORDER BY created_at DESC LIMIT ?`,
		f.Tool, f.Tool, f.limit(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list journal")
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			args       string
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&e.ID, &e.Tool, &args, &e.Result, &durationMS, &createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan journal entry")
		}
		if e.Arguments, err = decodeArgs(args); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: parse created_at")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: iterate journal")
}
