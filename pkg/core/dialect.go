package core

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (ANSI, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (DuckDB, SQLite, SQL Server).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAtP uses @p1, @p2, etc. for parameters (SQL Server).
	PlaceholderAtP
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// DialectFamily groups dialects that share type-rendering decisions.
type DialectFamily int

const (
	// FamilyANSI is the generic ANSI SQL family.
	FamilyANSI DialectFamily = iota
	// FamilyEmbedded covers in-process, file-backed engines (SQLite, DuckDB).
	FamilyEmbedded
	// FamilyClientServer covers networked open-source servers (PostgreSQL, MySQL).
	FamilyClientServer
	// FamilyEnterprise covers enterprise servers (SQL Server).
	FamilyEnterprise
)

// String returns the string representation of the family.
func (f DialectFamily) String() string {
	switch f {
	case FamilyANSI:
		return "ansi"
	case FamilyEmbedded:
		return "embedded"
	case FamilyClientServer:
		return "client-server"
	case FamilyEnterprise:
		return "enterprise"
	default:
		return "unknown"
	}
}
