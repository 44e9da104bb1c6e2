package aegis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/aegis/plugin"
)

// Guard is the policy decision point. It composes a principal's ability,
// resolves dynamic references in the declared requirements, and converts the
// match result into an allow/deny outcome. A Guard holds no mutable state
// after construction and is safe for concurrent use.
type Guard struct {
	grants     GrantTable
	source     RequirementSource
	plugins    *plugin.Registry
	pluginList []plugin.Plugin
	logger     *slog.Logger
	config     Config
	baseline   []abilityRule
}

// New creates a Guard with the given options. The grant table and baseline
// rules are validated up front: a malformed rule table is a programming
// error and fails construction rather than surfacing per request.
func New(opts ...Option) (*Guard, error) {
	g := &Guard{
		grants: DefaultGrants(),
		logger: slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if len(g.pluginList) > 0 {
		g.plugins = plugin.NewRegistry(g.logger)
		for _, p := range g.pluginList {
			g.plugins.Register(p)
		}
	}

	for _, r := range g.config.Baseline {
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("aegis: baseline rule: %w", err)
		}
		g.baseline = append(g.baseline, abilityRule{rule: r, source: sourceBaseline})
	}
	for role, grant := range g.grants {
		for _, r := range grant("probe") {
			if err := validateRule(r); err != nil {
				return nil, fmt.Errorf("aegis: grant table role %q: %w", role, err)
			}
		}
	}
	return g, nil
}

func validateRule(r Rule) error {
	if !r.Action.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, r.Action)
	}
	if !r.Subject.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSubject, r.Subject)
	}
	return nil
}

// Decide evaluates the declared requirements against the request context.
// All requirements must pass (AND); evaluation short-circuits on the first
// failure. Identical inputs always produce the identical decision.
func (g *Guard) Decide(ctx context.Context, reqs []Requirement, rctx *RequestContext) *Outcome {
	start := time.Now()

	if g.plugins != nil {
		g.plugins.EmitBeforeDecide(ctx, reqs, rctx)
	}

	outcome := g.decide(reqs, rctx)
	outcome.EvalTimeNs = time.Since(start).Nanoseconds()

	if g.plugins != nil {
		g.plugins.EmitAfterDecide(ctx, reqs, rctx, outcome)
	}
	return outcome
}

func (g *Guard) decide(reqs []Requirement, rctx *RequestContext) *Outcome {
	// No declared requirements means the operation is public.
	if len(reqs) == 0 {
		return &Outcome{Allowed: true, Decision: DecisionAllowed, Reason: "no requirements declared"}
	}
	if rctx == nil || rctx.User == nil {
		return &Outcome{Decision: DecisionDeniedUnauthenticated, Reason: "no principal present"}
	}

	ability := g.BuildAbility(rctx.User)

	var matched []MatchInfo
	for _, r := range reqs {
		resolved := ResolveConditions(r.Conditions, rctx)
		rule, ok := ability.match(r.Action, r.Subject, ResourceInstance(resolved))
		if !ok {
			return &Outcome{
				Decision: DecisionDeniedForbidden,
				Reason:   fmt.Sprintf("no rule permits %s on %s", r.Action, r.Subject),
			}
		}
		matched = append(matched, MatchInfo{
			Source: rule.source,
			Detail: fmt.Sprintf("%s %s", rule.rule.Action, rule.rule.Subject),
		})
	}

	return &Outcome{Allowed: true, Decision: DecisionAllowed, MatchedBy: matched}
}

// DecideOperation looks the operation's requirements up in the configured
// requirement source and decides.
func (g *Guard) DecideOperation(ctx context.Context, operation string, rctx *RequestContext) (*Outcome, error) {
	if g.source == nil {
		return nil, fmt.Errorf("%w: %q (no requirement source configured)", ErrOperationNotRegistered, operation)
	}
	reqs, ok := g.source.Requirements(operation)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotRegistered, operation)
	}
	return g.Decide(WithOperation(ctx, operation), reqs, rctx), nil
}

// Enforce returns an error unless every requirement passes.
func (g *Guard) Enforce(ctx context.Context, reqs []Requirement, rctx *RequestContext) error {
	outcome := g.Decide(ctx, reqs, rctx)
	switch outcome.Decision {
	case DecisionAllowed:
		return nil
	case DecisionDeniedUnauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, outcome.Reason)
	default:
		return fmt.Errorf("%w: %s", ErrAccessDenied, outcome.Reason)
	}
}

// Can is a shorthand: it composes the principal's ability and checks a
// single action/subject/instance triple without going through requirements.
func (g *Guard) Can(p *Principal, action Action, subject Subject, instance ResourceInstance) bool {
	return g.BuildAbility(p).Can(action, subject, instance)
}
