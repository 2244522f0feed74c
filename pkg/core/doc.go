// Package core defines the shared vocabulary of sqlaide.
//
// This package contains:
//   - Lint severities and SQL lint consequences
//   - Dialect identifier facts (quoting, normalization, family)
//   - Adapter and target configuration records
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
