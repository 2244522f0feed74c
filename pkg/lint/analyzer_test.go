package lint

import (
	"testing"

	"github.com/leapstack-labs/sqlaide/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTarget struct{ name string }

func init() {
	Register(RuleDef{
		ID:          "ZZ01",
		Name:        "test.always",
		Group:       "test",
		Description: "Always reports the target name.",
		Consequence: core.ConventionDDL,
		ConfigKeys:  []string{"suffix"},
		New: func(target any) Rule {
			tt, ok := target.(*testTarget)
			if !ok {
				return nil
			}
			return RuleFunc(func(sink Sink, opts Options) {
				sink.RegisterLintIssue(Issue{
					Message:     tt.name + GetStringOption(opts, "suffix", ""),
					Consequence: core.ConventionDDL,
				})
			})
		},
	})
	Register(RuleDef{
		ID:          "ZZ02",
		Name:        "test.opt-in",
		Group:       "test",
		Consequence: core.InformationalDDL,
		Disabled:    true,
		New: func(any) Rule {
			return RuleFunc(func(sink Sink, _ Options) {
				sink.RegisterLintIssue(Issue{Message: "opt-in", Consequence: core.InformationalDDL})
			})
		},
	})
}

func testIssues(issues []Issue) map[string]Issue {
	out := make(map[string]Issue)
	for _, i := range issues {
		if i.RuleID == "ZZ01" || i.RuleID == "ZZ02" {
			out[i.RuleID] = i
		}
	}
	return out
}

func TestAnalyzer_Defaults(t *testing.T) {
	var sink Issues
	NewAnalyzer(nil).Analyze(&testTarget{name: "t"}, &sink)

	got := testIssues(sink.LintIssues())
	require.Contains(t, got, "ZZ01")
	assert.NotContains(t, got, "ZZ02")
	assert.Equal(t, "t", got["ZZ01"].Message)
	assert.Equal(t, core.ConventionDDL, got["ZZ01"].Consequence)
}

func TestAnalyzer_IgnoresOtherTargets(t *testing.T) {
	var sink Issues
	NewAnalyzer(nil).Analyze("not a target", &sink)
	assert.NotContains(t, testIssues(sink.LintIssues()), "ZZ01")
}

func TestAnalyzer_Config(t *testing.T) {
	cfg := NewConfig().
		Enable("test.opt-in").
		SetConsequence("ZZ01", core.WarningDDL).
		SetRuleOptions("test.always", Options{"suffix": "!"})

	var sink Issues
	NewAnalyzer(cfg).Analyze(&testTarget{name: "t"}, &sink)

	got := testIssues(sink.LintIssues())
	require.Contains(t, got, "ZZ02")
	assert.Equal(t, core.WarningDDL, got["ZZ01"].Consequence)
	assert.Equal(t, "t!", got["ZZ01"].Message)
}

func TestAnalyzer_Disable(t *testing.T) {
	var sink Issues
	NewAnalyzer(NewConfig().Disable("ZZ01")).Analyze(&testTarget{name: "t"}, &sink)
	assert.NotContains(t, testIssues(sink.LintIssues()), "ZZ01")
}

func TestAnalyzer_WithOptions(t *testing.T) {
	var sink Issues
	NewAnalyzer(nil).WithOptions(Options{"suffix": "?"}).Analyze(&testTarget{name: "t"}, &sink)
	assert.Equal(t, "t?", testIssues(sink.LintIssues())["ZZ01"].Message)
}

func TestConfigFromProject(t *testing.T) {
	cfg, err := ConfigFromProject(core.LintConfig{
		Disabled:    []string{"TB01"},
		Enabled:     []string{"TB04"},
		Consequence: map[string]string{"TB02": "fatal-ddl"},
		Rules:       map[string]core.RuleOptions{"TB05": {"length": 64}},
	})
	require.NoError(t, err)
	assert.True(t, cfg.DisabledRules["TB01"])
	assert.True(t, cfg.EnabledRules["TB04"])
	assert.Equal(t, core.FatalDDL, cfg.ConsequenceOverrides["TB02"])
	assert.Equal(t, 64, GetIntOption(cfg.RuleOptions["TB05"], "length", 0))

	_, err = ConfigFromProject(core.LintConfig{Consequence: map[string]string{"TB02": "bogus"}})
	assert.ErrorContains(t, err, "lint rule TB02")
}

func TestRegistry(t *testing.T) {
	def, ok := GetByID("ZZ01")
	require.True(t, ok)
	assert.Equal(t, "test.always", def.Name)

	def, ok = GetByName("test.opt-in")
	require.True(t, ok)
	assert.Equal(t, "ZZ02", def.ID)

	assert.Len(t, GetByGroup("test"), 2)

	info := def.Info()
	assert.True(t, info.Disabled)
	assert.Equal(t, core.SeverityInfo, info.Severity)
}

func TestOptions_Decode(t *testing.T) {
	var out struct {
		Strategy string   `mapstructure:"strategy"`
		Length   int      `mapstructure:"length"`
		Ignore   []string `mapstructure:"ignore"`
	}
	err := Options{"strategy": "inflect", "length": "64", "ignore": []any{"news"}}.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, "inflect", out.Strategy)
	assert.Equal(t, 64, out.Length)
	assert.Equal(t, []string{"news"}, out.Ignore)
}
