package lint

// Analyzer runs registered lint rules against a target.
type Analyzer struct {
	config *Config
	extra  Options
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// WithOptions returns an analyzer that layers opts under every rule's
// configured options. Targets use this to pass per-table switches.
func (a *Analyzer) WithOptions(opts Options) *Analyzer {
	return &Analyzer{config: a.config, extra: opts}
}

// Analyze runs every enabled registered rule against target, registering
// issues on sink. Rules run in ID order.
func (a *Analyzer) Analyze(target any, sink Sink) {
	for _, def := range GetAll() {
		if a.config.IsDisabled(def) || def.New == nil {
			continue
		}
		rule := def.New(target)
		if rule == nil {
			continue
		}
		opts := a.extra.Merge(a.config.GetRuleOptions(def))
		runRule(rule, &ruleSink{Sink: sink, def: def, config: a.config}, opts)
	}
}

// ruleSink stamps the rule ID and applies consequence overrides.
type ruleSink struct {
	Sink
	def    RuleDef
	config *Config
}

func (s *ruleSink) RegisterLintIssue(issues ...Issue) {
	stamped := make([]Issue, len(issues))
	for i, issue := range issues {
		if issue.RuleID == "" {
			issue.RuleID = s.def.ID
			issue.Consequence = s.config.GetConsequence(s.def, issue.Consequence)
		}
		stamped[i] = issue
	}
	s.Sink.RegisterLintIssue(stamped...)
}
