package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	intconfig "github.com/leapstack-labs/sqlaide/internal/config"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// DefaultOutput auto-detects: TTY=text, non-TTY=markdown.
const DefaultOutput = "auto"

// envPrefix prefixes environment overrides, e.g. SQLAIDE_DIALECT.
const envPrefix = "SQLAIDE_"

// Loader loads configuration. ConfigFileUsed is set after Load.
type Loader struct {
	k              *koanf.Koanf
	ConfigFileUsed string
}

// NewLoader returns a loader with an empty koanf instance.
func NewLoader() *Loader {
	return &Loader{k: koanf.New(".")}
}

// Load loads configuration from defaults, the config file, environment
// variables and flags. Precedence (highest to lowest): flags > env vars >
// config file > defaults.
func (l *Loader) Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	projectRoot := inferProjectRoot(cfgFile)

	// 1. Defaults
	if err := l.k.Load(confmap.Provider(map[string]any{
		"dialect":                intconfig.DefaultDialect,
		"schema":                 intconfig.DefaultSchemaFile,
		"migrations_dir":         intconfig.DefaultMigrationsDir,
		"varchar_default_length": intconfig.DefaultVarcharLength,
		"output":                 DefaultOutput,
		"verbose":                false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = intconfig.FindConfigFile(projectRoot)
	}
	l.ConfigFileUsed = cfgFile
	if cfgFile != "" {
		if err := l.k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment: SQLAIDE_TARGET__DSN -> target.dsn, SQLAIDE_NAMESPACE -> namespace.
	// A double underscore separates nesting levels so keys keep their
	// single underscores.
	if err := l.k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := l.k.Load(posflag.ProviderWithFlag(flags, ".", l.k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	if flags != nil && flags.Changed("schema") {
		cfg.SchemaFile, _ = filepath.Abs(cfg.SchemaFile)
	} else {
		cfg.SchemaFile = resolvePathRelativeTo(cfg.SchemaFile, projectRoot)
	}
	cfg.MigrationsDir = resolvePathRelativeTo(cfg.MigrationsDir, projectRoot)

	if cfg.Target != nil {
		expandTargetEnvVars(cfg.Target)
		intconfig.ApplyTargetDefaults(cfg.Target)
		if cfg.Target.Database != "" && cfg.Target.Database != ":memory:" && isFileTarget(cfg.Target.Type) {
			cfg.Target.Database = resolvePathRelativeTo(cfg.Target.Database, projectRoot)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// inferProjectRoot returns the explicit config file's directory, or the
// nearest ancestor of the working directory holding a config file, or the
// working directory.
func inferProjectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := intconfig.FindProjectRoot(cwd, maxUpwardSearchLevels); root != "" {
		return root
	}
	return cwd
}

func isFileTarget(t string) bool {
	switch strings.ToLower(t) {
	case "sqlite", "sqlite3", "duckdb", "duck":
		return true
	}
	return false
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns. Unset variables are left as is.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}

// expandTargetEnvVars expands environment variables in sensitive target fields.
func expandTargetEnvVars(t *TargetConfig) {
	t.DSN = expandEnvVars(t.DSN)
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context. Without one it
// returns the defaults.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Dialect:              intconfig.DefaultDialect,
		SchemaFile:           intconfig.DefaultSchemaFile,
		MigrationsDir:        intconfig.DefaultMigrationsDir,
		VarcharDefaultLength: intconfig.DefaultVarcharLength,
		OutputFormat:         DefaultOutput,
	}
}
