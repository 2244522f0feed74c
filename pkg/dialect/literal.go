package dialect

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time layouts used for quoted date and timestamp literals.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// QuotedLiteral renders v as a SQL literal. It returns the value it quoted
// alongside the text so callers can keep both.
func (d *Dialect) QuotedLiteral(v any) (any, string) {
	switch val := v.(type) {
	case nil:
		return v, "NULL"
	case string:
		return v, d.QuoteString(val)
	case bool:
		if val {
			return v, d.boolLiterals[1]
		}
		return v, d.boolLiterals[0]
	case int:
		return v, strconv.Itoa(val)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, fmt.Sprintf("%d", val)
	case float32:
		return v, strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return v, strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return v, d.QuoteString(formatTime(val))
	case []byte:
		return v, "X'" + strings.ToUpper(hex.EncodeToString(val)) + "'"
	case fmt.Stringer:
		return v, d.QuoteString(val.String())
	default:
		return v, d.QuoteString(fmt.Sprint(val))
	}
}

// QuoteString single-quotes s, doubling embedded quotes.
func (d *Dialect) QuoteString(s string) string {
	if d.escapeBackslash {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// BooleanLiteral returns the text for a boolean value.
func (d *Dialect) BooleanLiteral(b bool) string {
	if b {
		return d.boolLiterals[1]
	}
	return d.boolLiterals[0]
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(DateTimeLayout)
}
