package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the journal uses.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// PostgresJournal implements Journal using pgxpool.
type PostgresJournal struct {
	pool Pool
}

// NewPostgres creates a PostgresJournal with a small connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresJournal, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 4
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresJournal{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS tool_journal (
	id          UUID PRIMARY KEY,
	tool        TEXT NOT NULL,
	arguments   JSONB NOT NULL,
	result      TEXT NOT NULL,
	duration_ms BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tool_journal_tool ON tool_journal(tool);
CREATE INDEX IF NOT EXISTS idx_tool_journal_created_at ON tool_journal(created_at);
`

func (p *PostgresJournal) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (p *PostgresJournal) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresJournal) Record(ctx context.Context, e Entry) error {
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

	_, err = p.pool.Exec(ctx,
		`INSERT INTO tool_journal (id, tool, arguments, result, duration_ms, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Tool, args, e.Result, e.Duration.Milliseconds(), e.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert journal entry %s", e.ID)
}

func (p *PostgresJournal) List(ctx context.Context, f Filter) ([]Entry, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id::text, tool, arguments::text, result, duration_ms, created_at FROM tool_journal
		WHERE ($1 = '' OR tool = $1) ORDER BY created_at DESC LIMIT $2`,
		f.Tool, f.limit(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list journal")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			args       string
			durationMS int64
		)
		if err := rows.Scan(&e.ID, &e.Tool, &args, &e.Result, &durationMS, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan journal entry")
		}
		if e.Arguments, err = decodeArgs(args); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: iterate journal")
}
