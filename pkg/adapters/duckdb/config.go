package duckdb

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB session configuration decoded from
// adapter.Config.Params.
type Params struct {
	// Extensions to install and load before DDL runs (e.g. "json").
	Extensions []string `mapstructure:"extensions"`

	// Settings applied with SET at connect time (e.g. threads, memory_limit).
	Settings map[string]string `mapstructure:"settings"`
}

// ParseParams decodes raw adapter params. Nil yields empty Params.
func ParseParams(raw map[string]any) (*Params, error) {
	p := &Params{}
	if len(raw) == 0 {
		return p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid duckdb params: %w", err)
	}
	return p, nil
}
