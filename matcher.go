package aegis

import "fmt"

// Can reports whether the ability permits action on subject for the given
// instance. A nil instance only satisfies rules without conditions.
func (a Ability) Can(action Action, subject Subject, instance ResourceInstance) bool {
	_, ok := a.match(action, subject, instance)
	return ok
}

// match returns the first rule satisfying the request. Rules are additive:
// one satisfied rule is enough.
func (a Ability) match(action Action, subject Subject, instance ResourceInstance) (abilityRule, bool) {
	for _, r := range a.rules {
		if !matchSubject(r.rule.Subject, subject) {
			continue
		}
		if !matchAction(r.rule.Action, action) {
			continue
		}
		if !conditionsSatisfied(r.rule.Conditions, instance) {
			continue
		}
		return r, true
	}
	return abilityRule{}, false
}

func matchSubject(ruleSubject, target Subject) bool {
	return ruleSubject == target || ruleSubject == SubjectAll
}

func matchAction(ruleAction, target Action) bool {
	return ruleAction == target || ruleAction == ActionManage
}

// conditionsSatisfied checks every condition pair against the instance.
// A rule without conditions matches unconditionally once subject and action
// match; a rule with conditions requires an instance.
func conditionsSatisfied(conditions map[string]any, instance ResourceInstance) bool {
	if len(conditions) == 0 {
		return true
	}
	if instance == nil {
		return false
	}
	for k, want := range conditions {
		got, ok := instance[k]
		if !ok {
			return false
		}
		if !equalValue(got, want) {
			return false
		}
	}
	return true
}

// equalValue compares two condition scalars. The resolver's undefined
// sentinel never equals anything, so an unresolved dynamic reference
// fails closed.
func equalValue(a, b any) bool {
	if isUndefined(a) || isUndefined(b) {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
