package domain

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
)

// Options configures domain creation.
type Options struct {
	Identity    string // Column name; NotBound when empty
	ForceCreate bool   // CacheableFrom builds a fresh domain even if one is attached
}

// Factory creates domains from descriptors.
type Factory struct {
	logger         *slog.Logger
	varcharDefault int
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithLogger sets the factory logger.
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithVarcharDefaultLength sets the fallback VARCHAR length.
func WithVarcharDefaultLength(n int) FactoryOption {
	return func(f *Factory) {
		if n > 0 {
			f.varcharDefault = n
		}
	}
}

// NewFactory creates a domain factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		logger:         slog.New(slog.DiscardHandler),
		varcharDefault: VarcharDefaultLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromType builds a new domain for desc. An unrecognized type is an
// *UnmappedTypeError naming the type and identity.
func (f *Factory) FromType(desc Descriptor, opts Options) (*Domain, error) {
	identity := opts.Identity
	if identity == "" {
		identity = NotBound
	}
	if desc.kind == core.DataTypeUnknown {
		return nil, &UnmappedTypeError{TypeName: desc.TypeName(), Identity: identity}
	}

	d := &Domain{
		identity:       identity,
		desc:           desc,
		varcharDefault: f.varcharDefault,
	}

	if desc.kind == core.DataTypeArray {
		elemDesc, ok := desc.Elem()
		if !ok {
			return nil, &UnmappedTypeError{TypeName: "array of nothing", Identity: identity}
		}
		elem, err := f.FromType(elemDesc, Options{Identity: identity})
		if err != nil {
			return nil, fmt.Errorf("array element: %w", err)
		}
		d.elem = elem
	}

	f.inspect(d)
	f.logger.Debug("domain created",
		slog.String("identity", identity),
		slog.String("type", desc.TypeName()),
		slog.Bool("nullable", desc.IsNullable()))
	return d, nil
}

// CacheableFrom returns cached when it is non-nil, unless opts.ForceCreate
// is set. Otherwise it builds a fresh domain.
func (f *Factory) CacheableFrom(desc Descriptor, cached *Domain, opts Options) (*Domain, error) {
	if cached != nil && !opts.ForceCreate {
		return cached, nil
	}
	return f.FromType(desc, opts)
}

// inspect records structural issues found at creation time.
func (f *Factory) inspect(d *Domain) {
	switch d.desc.kind {
	case core.DataTypeNativeEnum, core.DataTypeTextEnum:
		values := d.desc.enumValues
		if len(values) == 0 {
			d.RegisterLintIssue(lint.Issue{
				Message:     "enum domain declares no values",
				Consequence: core.WarningDDL,
				Location:    d.location,
			})
		}
		seen := make(map[string]struct{}, len(values))
		for _, v := range values {
			if _, dup := seen[v]; dup {
				d.RegisterLintIssue(lint.Issue{
					Message:     fmt.Sprintf("enum domain repeats value '%s'", v),
					Consequence: core.WarningDDL,
					Location:    d.location,
				})
			}
			seen[v] = struct{}{}
		}
	case core.DataTypeVarChar:
		if d.desc.hasDef {
			if s, ok := d.desc.def.(string); ok && d.desc.max > 0 && len([]rune(s)) > d.desc.max {
				d.RegisterLintIssue(lint.Issue{
					Message:     fmt.Sprintf("default value is longer than VARCHAR(%d)", d.desc.max),
					Consequence: core.WarningDDL,
					Location:    d.location,
				})
			}
		}
	}
}
