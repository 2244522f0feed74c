package lint

import "github.com/go-viper/mapstructure/v2"

// Options carries rule-specific configuration.
type Options map[string]any

// Decode decodes the options into out, a pointer to a struct with
// mapstructure tags. Scalar values are converted weakly so options read
// from YAML or environment variables decode into typed fields.
func (o Options) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(o))
}

// Merge returns a copy of o with other's keys layered on top.
func (o Options) Merge(other Options) Options {
	out := make(Options, len(o)+len(other))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts Options, key string, defaultVal T) T {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetBoolOption extracts a bool option.
func GetBoolOption(opts Options, key string, defaultVal bool) bool {
	return GetOption(opts, key, defaultVal)
}

// GetStringOption extracts a string option.
func GetStringOption(opts Options, key string, defaultVal string) string {
	return GetOption(opts, key, defaultVal)
}

// GetIntOption extracts an int option, handling float64 from JSON.
func GetIntOption(opts Options, key string, defaultVal int) int {
	if opts == nil {
		return defaultVal
	}
	switch n := opts[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return defaultVal
	}
}

// GetStringSliceOption extracts a string slice option.
func GetStringSliceOption(opts Options, key string, defaultVal []string) []string {
	if opts == nil {
		return defaultVal
	}
	switch s := opts[key].(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return defaultVal
	}
}
