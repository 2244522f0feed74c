package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Consequence classifies a SQL lint issue by its impact and the kind of
// statement (DDL, DML, DQL) it affects.
type Consequence int

// Lint issue consequences. The zero value is ConsequenceNone.
const (
	ConsequenceNone Consequence = iota
	InformationalDDL
	InformationalDML
	InformationalDQL
	ConventionDDL
	ConventionDML
	ConventionDQL
	WarningDDL
	WarningDML
	WarningDQL
	FatalDDL
	FatalDML
	FatalDQL
)

var consequenceLabels = map[Consequence]string{
	InformationalDDL: "Informational (DDL)",
	InformationalDML: "Informational (DML)",
	InformationalDQL: "Informational (DQL)",
	ConventionDDL:    "Convention (DDL)",
	ConventionDML:    "Convention (DML)",
	ConventionDQL:    "Convention (DQL)",
	WarningDDL:       "DDL Warning",
	WarningDML:       "DML Warning",
	WarningDQL:       "DQL Warning",
	FatalDDL:         "FATAL DDL",
	FatalDML:         "FATAL DML",
	FatalDQL:         "FATAL DQL",
}

var consequenceKeys = map[string]Consequence{
	"informational_ddl": InformationalDDL,
	"informational_dml": InformationalDML,
	"informational_dql": InformationalDQL,
	"convention_ddl":    ConventionDDL,
	"convention_dml":    ConventionDML,
	"convention_dql":    ConventionDQL,
	"warning_ddl":       WarningDDL,
	"warning_dml":       WarningDML,
	"warning_dql":       WarningDQL,
	"fatal_ddl":         FatalDDL,
	"fatal_dml":         FatalDML,
	"fatal_dql":         FatalDQL,
}

// String returns the human label used in rendered lint summaries.
func (c Consequence) String() string {
	if label, ok := consequenceLabels[c]; ok {
		return label
	}
	return ""
}

// Key returns the configuration key for the consequence (e.g. "warning_ddl").
func (c Consequence) Key() string {
	for k, v := range consequenceKeys {
		if v == c {
			return k
		}
	}
	return ""
}

// IsFatal reports whether the consequence is one of the FATAL kinds.
func (c Consequence) IsFatal() bool {
	return c == FatalDDL || c == FatalDML || c == FatalDQL
}

// Severity maps a consequence onto the generic severity scale.
func (c Consequence) Severity() Severity {
	switch c {
	case FatalDDL, FatalDML, FatalDQL:
		return SeverityError
	case WarningDDL, WarningDML, WarningDQL:
		return SeverityWarning
	case ConventionDDL, ConventionDML, ConventionDQL:
		return SeverityHint
	default:
		return SeverityInfo
	}
}

// ParseConsequence accepts either a configuration key ("convention_ddl")
// or a rendered label ("Convention (DDL)").
func ParseConsequence(s string) (Consequence, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if c, ok := consequenceKeys[key]; ok {
		return c, nil
	}
	for c, label := range consequenceLabels {
		if strings.EqualFold(label, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return ConsequenceNone, fmt.Errorf("unknown lint consequence %q", s)
}

// MarshalJSON encodes the consequence as its configuration key.
func (c Consequence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Key())
}
