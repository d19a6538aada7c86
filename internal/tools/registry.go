// Package tools exposes the research operations behind a string-in,
// string-out boundary for the orchestrator, the CLI and the HTTP server.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/dealer-scout/internal/journal"
)

// Args are a tool's named string arguments.
type Args map[string]string

// Tool is one callable operation. Run never returns an error: every failure
// is rendered into the result text.
type Tool interface {
	Name() string
	Description() string
	Parameters() []string
	Run(ctx context.Context, args Args) string
}

// Recorder receives one entry per invocation.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Registry maps tool names to their implementations.
type Registry struct {
	tools    map[string]Tool
	order    []string // insertion order for deterministic listing
	recorder Recorder
}

// NewRegistry creates an empty registry. A nil recorder disables the journal.
func NewRegistry(recorder Recorder) *Registry {
	return &Registry{
		tools:    make(map[string]Tool),
		recorder: recorder,
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	if _, ok := r.tools[name]; !ok {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, eris.Errorf("tools: unknown tool %q", name)
	}
	return t, nil
}

// All returns all tools in registration order.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Invoke runs the named tool. The error is non-nil only for an unknown tool.
func (r *Registry) Invoke(ctx context.Context, name string, args Args) (string, error) {
	t, err := r.Get(name)
	if err != nil {
		return "", err
	}

	start := time.Now()
	result := run(ctx, t, args)
	elapsed := time.Since(start)

	zap.L().Info("tools: invoked",
		zap.String("tool", name),
		zap.Duration("duration", elapsed),
	)

	if r.recorder != nil {
		entry := journal.Entry{
			Tool:      name,
			Arguments: args,
			Result:    result,
			Duration:  elapsed,
			CreatedAt: start.UTC(),
		}
		if err := r.recorder.Record(ctx, entry); err != nil {
			zap.L().Warn("tools: journal record failed", zap.String("tool", name), zap.Error(err))
		}
	}
	return result, nil
}

func run(ctx context.Context, t Tool, args Args) (result string) {
	defer func() {
		if p := recover(); p != nil {
			zap.L().Error("tools: recovered panic", zap.String("tool", t.Name()), zap.Any("panic", p))
			result = fmt.Sprintf("Error: %v", p)
		}
	}()
	if args == nil {
		args = Args{}
	}
	return t.Run(ctx, args)
}
