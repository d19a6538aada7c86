// Package journal keeps an append-only record of tool invocations. Entries
// are written for auditing and are never read back to answer a call.
package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultLimit caps List when the filter sets no limit.
const DefaultLimit = 50

// Entry is one tool invocation.
type Entry struct {
	ID        string            `json:"id" yaml:"id"`
	Tool      string            `json:"tool" yaml:"tool"`
	Arguments map[string]string `json:"arguments" yaml:"arguments"`
	Result    string            `json:"result" yaml:"result"`
	Duration  time.Duration     `json:"duration" yaml:"duration"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
}

// Filter narrows List.
type Filter struct {
	Tool  string
	Limit int
}

// Journal persists entries.
type Journal interface {
	Record(ctx context.Context, e Entry) error
	List(ctx context.Context, f Filter) ([]Entry, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects to the configured backend and applies the schema.
func Open(ctx context.Context, driver, dsn string) (Journal, error) {
	var (
		j   Journal
		err error
	)
	switch driver {
	case "sqlite":
		j, err = NewSQLite(dsn)
	case "postgres":
		j, err = NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("journal: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := j.Migrate(ctx); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	return f.Limit
}

func encodeArgs(args map[string]string) (string, error) {
	if args == nil {
		args = map[string]string{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return "", eris.Wrap(err, "journal: marshal arguments")
	}
	return string(b), nil
}

func decodeArgs(s string) (map[string]string, error) {
	args := map[string]string{}
	if s == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(s), &args); err != nil {
		return nil, eris.Wrap(err, "journal: unmarshal arguments")
	}
	return args, nil
}
