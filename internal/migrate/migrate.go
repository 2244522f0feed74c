// Package migrate writes rendered schema statements as goose SQL
// migrations and applies them.
//
// Each written file carries an xxh3 checksum of its Up statements so an
// unchanged schema does not produce a new migration.
package migrate

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/zeebo/xxh3"

	"github.com/leapstack-labs/sqlaide/pkg/dialect"
)

// ErrUnchanged is returned by Write when the newest migration in the
// directory already has the same checksum.
var ErrUnchanged = errors.New("schema unchanged since last migration")

const checksumPrefix = "-- sqlaide checksum: "

// VersionFormat is the goose timestamp version layout.
const VersionFormat = "20060102150405"

var nameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// Migration is one goose SQL migration.
type Migration struct {
	Version int64
	Name    string
	Up      []string
	Down    []string
}

// New returns a migration versioned at now.
func New(now time.Time, name string, up, down []string) Migration {
	version, _ := strconv.ParseInt(now.UTC().Format(VersionFormat), 10, 64)
	return Migration{Version: version, Name: name, Up: up, Down: down}
}

// Checksum returns the hex xxh3 hash of the Up statements.
func Checksum(statements []string) string {
	h := xxh3.New()
	for _, s := range statements {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Checksum returns the checksum of m's Up statements.
func (m Migration) Checksum() string {
	return Checksum(m.Up)
}

// Filename returns the goose file name, e.g. 20240101120000_init_schema.sql.
func (m Migration) Filename() string {
	name := strings.Trim(nameSanitizer.ReplaceAllString(strings.ToLower(m.Name), "_"), "_")
	if name == "" {
		name = "schema"
	}
	return fmt.Sprintf("%d_%s.sql", m.Version, name)
}

// Bytes renders the migration file. Every statement is wrapped in
// StatementBegin/End so goose never splits inside it.
func (m Migration) Bytes() []byte {
	var b strings.Builder
	b.WriteString(checksumPrefix + m.Checksum() + "\n\n")
	section := func(marker string, stmts []string) {
		b.WriteString("-- +goose " + marker + "\n")
		for _, s := range stmts {
			b.WriteString("-- +goose StatementBegin\n")
			b.WriteString(strings.TrimRight(s, "; \n") + ";\n")
			b.WriteString("-- +goose StatementEnd\n")
		}
	}
	section("Up", m.Up)
	b.WriteString("\n")
	section("Down", m.Down)
	return []byte(b.String())
}

// Write stores m in dir and returns the file path. It returns
// ErrUnchanged without writing when the newest migration has the same
// checksum.
func Write(dir string, m Migration) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create migrations dir: %w", err)
	}
	latest, err := LatestChecksum(dir)
	if err != nil {
		return "", err
	}
	if latest != "" && latest == m.Checksum() {
		return "", ErrUnchanged
	}
	path := filepath.Join(dir, m.Filename())
	if err := os.WriteFile(path, m.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write migration: %w", err)
	}
	return path, nil
}

// LatestChecksum returns the checksum header of the newest migration in
// dir, or "" when there is none or it has no header.
func LatestChecksum(dir string) (string, error) {
	files, err := migrationFiles(dir)
	if err != nil || len(files) == 0 {
		return "", err
	}
	f, err := os.Open(filepath.Join(dir, files[len(files)-1])) //nolint:gosec // dir is the configured migrations directory
	if err != nil {
		return "", fmt.Errorf("failed to open migration: %w", err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		if line := sc.Text(); strings.HasPrefix(line, checksumPrefix) {
			return strings.TrimPrefix(line, checksumPrefix), nil
		}
	}
	return "", sc.Err()
}

// migrationFiles returns the .sql file names in dir sorted by version.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// UnsupportedDialectError is returned for dialects goose cannot track.
type UnsupportedDialectError struct {
	Dialect string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("migrations are not supported for dialect %q", e.Dialect)
}

// gooseDialect maps a dialect to goose's name for it.
func gooseDialect(d *dialect.Dialect) (goose.Dialect, error) {
	switch d.Name {
	case "sqlite":
		return goose.DialectSQLite3, nil
	case "postgres":
		return goose.DialectPostgres, nil
	case "mysql":
		return goose.DialectMySQL, nil
	case "mssql":
		return goose.DialectMSSQL, nil
	default:
		return "", &UnsupportedDialectError{Dialect: d.Name}
	}
}

func newProvider(db *sql.DB, d *dialect.Dialect, dir string) (*goose.Provider, error) {
	gd, err := gooseDialect(d)
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(gd, db, os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return p, nil
}

// Up applies pending migrations from dir and returns how many ran.
func Up(ctx context.Context, db *sql.DB, d *dialect.Dialect, dir string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p, err := newProvider(db, d, dir)
	if err != nil {
		return 0, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			slog.String("file", r.Source.Path),
			slog.Duration("duration", r.Duration))
	}
	return len(results), nil
}

// Version returns the current database migration version.
func Version(ctx context.Context, db *sql.DB, d *dialect.Dialect, dir string) (int64, error) {
	p, err := newProvider(db, d, dir)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}

// StatusEntry is the applied state of one migration file.
type StatusEntry struct {
	Version   int64     `json:"version"`
	File      string    `json:"file"`
	Applied   bool      `json:"applied"`
	AppliedAt time.Time `json:"applied_at,omitzero"`
}

// Status reports every migration in dir and whether it has been applied.
func Status(ctx context.Context, db *sql.DB, d *dialect.Dialect, dir string) ([]StatusEntry, error) {
	p, err := newProvider(db, d, dir)
	if err != nil {
		return nil, err
	}
	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	out := make([]StatusEntry, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, StatusEntry{
			Version:   s.Source.Version,
			File:      filepath.Base(s.Source.Path),
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}
