package aegis

// Rule sources, reported in Outcome.MatchedBy.
const (
	sourceBaseline = "baseline"
	sourceStored   = "stored"
	sourceRole     = "role"
)

type abilityRule struct {
	rule   Rule
	source string
}

// Ability is the fully composed, immutable rule set for one principal,
// built fresh for one authorization check. The zero value grants nothing.
type Ability struct {
	rules []abilityRule
}

// Rules returns a copy of the composed rule list in evaluation order.
func (a Ability) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	for i, r := range a.rules {
		out[i] = r.rule
	}
	return out
}

// BuildAbility composes the rule set for p: baseline rules, then the
// principal's stored permissions, then the static role grant table. A nil
// principal yields the baseline only. The rule set is additive; a request is
// allowed if any one rule matches.
func (g *Guard) BuildAbility(p *Principal) Ability {
	rules := make([]abilityRule, 0, len(g.baseline)+8)
	rules = append(rules, g.baseline...)
	if p == nil {
		return Ability{rules: rules}
	}

	stored, ok := decodeStoredPermissions(p.StoredPermissions)
	if !ok {
		g.logger.Warn("aegis: malformed stored permissions, skipping",
			"principal_id", p.ID, "role", p.RoleName)
	}
	for _, r := range stored {
		rules = append(rules, abilityRule{rule: r, source: sourceStored})
	}

	if grant, ok := g.grants[p.RoleName]; ok {
		for _, r := range grant(p.ID) {
			rules = append(rules, abilityRule{rule: r, source: sourceRole})
		}
	}

	return Ability{rules: rules}
}

// decodeStoredPermissions validates the raw permission list from the
// principal's role record. Returns ok=false if the value is present but not
// a well-formed list; individual malformed entries are skipped. Data quality
// problems here must never abort a decision.
func decodeStoredPermissions(raw any) ([]Rule, bool) {
	if raw == nil {
		return nil, true
	}

	var rules []Rule
	switch list := raw.(type) {
	case []Rule:
		for _, r := range list {
			if r.Action.Valid() && r.Subject.Valid() {
				rules = append(rules, r)
			}
		}
	case []any:
		for _, item := range list {
			r, ok := decodeStoredEntry(item)
			if !ok {
				continue
			}
			rules = append(rules, r)
		}
	default:
		return nil, false
	}
	return rules, true
}

func decodeStoredEntry(item any) (Rule, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return Rule{}, false
	}
	action, _ := m["action"].(string)
	subject, _ := m["subject"].(string)
	r := Rule{Action: Action(action), Subject: Subject(subject)}
	if !r.Action.Valid() || !r.Subject.Valid() {
		return Rule{}, false
	}
	if conds, ok := m["conditions"].(map[string]any); ok && len(conds) > 0 {
		r.Conditions = conds
	}
	return r, true
}
