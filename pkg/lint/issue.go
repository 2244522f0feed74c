package lint

import (
	"sync"

	"github.com/leapstack-labs/sqlaide/pkg/core"
)

// Issue is an advisory, non-fatal finding.
type Issue struct {
	RuleID      string
	Message     string
	Consequence core.Consequence

	// Location describes where the issue was found, truncated to maxLen
	// runes when maxLen > 0. Computed lazily.
	Location func(maxLen int) string
}

// Where returns the issue location, or "" when none was recorded.
func (i Issue) Where(maxLen int) string {
	if i.Location == nil {
		return ""
	}
	return i.Location(maxLen)
}

func (i Issue) key() string {
	return i.RuleID + "\x00" + i.Message + "\x00" + i.Where(0)
}

// At returns a Location function for a fixed location string.
func At(location string) func(maxLen int) string {
	return func(maxLen int) string {
		return Truncate(location, maxLen)
	}
}

// Truncate shortens s to at most maxLen runes. maxLen <= 0 means no limit.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}

// Sink receives lint issues.
type Sink interface {
	RegisterLintIssue(issues ...Issue)
	LintIssues() []Issue
}

// Issues is an append-only, concurrency-safe Sink. Registering an issue that
// is already present (same rule, message and location) is a no-op, so
// repeated lint passes are idempotent.
type Issues struct {
	mu    sync.RWMutex
	items []Issue
	seen  map[string]struct{}
}

// RegisterLintIssue appends issues that have not been seen before.
func (l *Issues) RegisterLintIssue(issues ...Issue) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	for _, issue := range issues {
		k := issue.key()
		if _, dup := l.seen[k]; dup {
			continue
		}
		l.seen[k] = struct{}{}
		l.items = append(l.items, issue)
	}
}

// LintIssues returns a snapshot of the registered issues in registration order.
func (l *Issues) LintIssues() []Issue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Issue, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of registered issues.
func (l *Issues) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// HasFatal reports whether any registered issue carries a fatal consequence.
func (l *Issues) HasFatal() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, i := range l.items {
		if i.Consequence.IsFatal() {
			return true
		}
	}
	return false
}
