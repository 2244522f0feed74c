package rules

import (
	"slices"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/leapstack-labs/sqlaide/pkg/lint"
	"github.com/leapstack-labs/sqlaide/pkg/table"
)

func init() {
	lint.Register(NameSingular)
}

// NameSingular flags pluralized table names.
var NameSingular = lint.RuleDef{
	ID:          "TB01",
	Name:        "table.name-singular",
	Group:       groupTable,
	Description: "Table names should be singular.",
	Consequence: core.ConventionDDL,
	ConfigKeys:  []string{"strategy", "ignore"},
	New:         bind(checkNameSingular),

	Rationale: `A row describes one entity, so the table is named after one entity.
Singular names also keep foreign key columns readable (user_id references user).`,

	BadExample:  `CREATE TABLE "users" ("user_id" INTEGER PRIMARY KEY)`,
	GoodExample: `CREATE TABLE "user" ("user_id" INTEGER PRIMARY KEY)`,
}

const (
	strategySuffix  = "suffix"
	strategyInflect = "inflect"
)

type nameSingularOptions struct {
	Strategy string   `mapstructure:"strategy"`
	Ignore   []string `mapstructure:"ignore"`
	Skip     bool     `mapstructure:"ignorePluralName"`
}

func checkNameSingular(def *table.Definition, sink lint.Sink, opts lint.Options) {
	cfg := nameSingularOptions{Strategy: strategySuffix}
	if err := opts.Decode(&cfg); err != nil {
		sink.RegisterLintIssue(lint.Issue{
			Message:     "invalid TB01 options: " + err.Error(),
			Consequence: core.InformationalDDL,
			Location:    definitionLocation(def),
		})
		return
	}
	name := def.Name()
	if cfg.Skip || slices.Contains(cfg.Ignore, name) {
		return
	}

	var message string
	switch cfg.Strategy {
	case strategyInflect:
		if singular := inflect.Singularize(name); singular != name {
			message = "table name '" + name + "' is plural (singular form is '" + singular + "')"
		}
	default:
		if strings.HasSuffix(strings.ToLower(name), "s") {
			message = "table name '" + name + "' ends with an 's' (should be singular, not plural)"
		}
	}
	if message == "" {
		return
	}
	sink.RegisterLintIssue(lint.Issue{
		Message:     message,
		Consequence: core.ConventionDDL,
		Location:    definitionLocation(def),
	})
}
