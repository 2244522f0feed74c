package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlaide/pkg/emit"
)

// Render renders each fragment for the adapter's dialect, one string per
// statement. Comment-only fragments and batch separators are dropped and
// terminators are stripped, since drivers take one statement per call.
func Render(ectx *emit.Context, fragments ...emit.Fragment) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		sql := strings.TrimSpace(f.SQL(ectx))
		sql = strings.TrimSpace(strings.TrimSuffix(sql, ectx.Dialect.Terminator()))
		if sql == "" || isCommentOnly(sql) || sql == ectx.Dialect.BatchSeparator() {
			continue
		}
		out = append(out, sql)
	}
	return out
}

func isCommentOnly(sql string) bool {
	for _, line := range strings.Split(sql, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

// Apply renders fragments with ectx and executes them on a. Adapters that
// implement Batcher run them in a single transaction. It returns the number
// of statements executed.
func Apply(ctx context.Context, a Adapter, ectx *emit.Context, fragments ...emit.Fragment) (int, error) {
	statements := Render(ectx, fragments...)
	if len(statements) == 0 {
		return 0, nil
	}
	if b, ok := a.(Batcher); ok {
		if err := b.ExecBatch(ctx, statements); err != nil {
			return 0, err
		}
		return len(statements), nil
	}
	for i, stmt := range statements {
		if err := a.Exec(ctx, stmt); err != nil {
			return i, fmt.Errorf("statement %d failed: %w", i+1, err)
		}
	}
	return len(statements), nil
}
