package emit

import (
	"log/slog"

	"github.com/leapstack-labs/sqlaide/pkg/dialect"
	"github.com/leapstack-labs/sqlaide/pkg/naming"
)

// Context is the dialect context passed to every render call.
type Context struct {
	Dialect *dialect.Dialect
	Naming  naming.Options
	Text    TextOptions
	Logger  *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// NewContext creates a rendering context for d. A nil dialect uses ANSI.
// Identifiers are quoted unless WithoutQuotedIdentifiers is given.
func NewContext(d *dialect.Dialect, opts ...Option) *Context {
	if d == nil {
		d = dialect.Default()
	}
	ctx := &Context{
		Dialect: d,
		Naming:  naming.Options{Quote: true},
		Text:    DefaultTextOptions(),
		Logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// WithNamespace qualifies object names with a schema.
func WithNamespace(ns string) Option {
	return func(c *Context) {
		c.Naming.Namespace = ns
	}
}

// WithoutQuotedIdentifiers renders bare identifiers.
func WithoutQuotedIdentifiers() Option {
	return func(c *Context) {
		c.Naming.Quote = false
	}
}

// WithNormalizedIdentifiers folds identifiers to the dialect's case rule.
func WithNormalizedIdentifiers() Option {
	return func(c *Context) {
		c.Naming.Normalize = true
	}
}

// WithIndent overrides the indentation used for a purpose.
func WithIndent(purpose IndentPurpose, indent string) Option {
	return func(c *Context) {
		c.Text = c.Text.WithIndent(purpose, indent)
	}
}

// WithLogger sets the logger used by renderers.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// NamingStrategy returns the naming strategy for this context. Overrides
// adjust a copy of the context's naming options.
func (c *Context) NamingStrategy(overrides ...func(*naming.Options)) naming.Strategy {
	opts := c.Naming
	for _, o := range overrides {
		o(&opts)
	}
	return naming.New(c.Dialect, opts)
}

// QuotedLiteral renders v as a literal through the dialect's quoting rules.
func (c *Context) QuotedLiteral(v any) (any, string) {
	return c.Dialect.QuotedLiteral(v)
}

// Literal returns only the quoted text of v.
func (c *Context) Literal(v any) string {
	_, text := c.Dialect.QuotedLiteral(v)
	return text
}
