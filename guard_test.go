package aegis_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/xraph/aegis"
	"github.com/xraph/aegis/decisionlog"
	"github.com/xraph/aegis/requirement"
)

func newGuard(t *testing.T, opts ...aegis.Option) *aegis.Guard {
	t.Helper()
	g, err := aegis.New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDecideNoRequirementsIsPublic(t *testing.T) {
	g := newGuard(t)

	// Even an anonymous context passes when nothing is declared.
	outcome := g.Decide(context.Background(), nil, &aegis.RequestContext{})
	if !outcome.Allowed || outcome.Decision != aegis.DecisionAllowed {
		t.Fatalf("expected allowed, got %s", outcome.Decision)
	}
}

func TestDecideAnonymousIsUnauthenticated(t *testing.T) {
	g := newGuard(t)

	reqs := []aegis.Requirement{{Action: aegis.ActionRead, Subject: aegis.SubjectDocument}}

	outcome := g.Decide(context.Background(), reqs, &aegis.RequestContext{})
	if outcome.Decision != aegis.DecisionDeniedUnauthenticated {
		t.Fatalf("expected denied_unauthenticated, got %s", outcome.Decision)
	}

	outcome = g.Decide(context.Background(), reqs, nil)
	if outcome.Decision != aegis.DecisionDeniedUnauthenticated {
		t.Fatalf("nil context should deny unauthenticated, got %s", outcome.Decision)
	}
}

func TestDecideDynamicReference(t *testing.T) {
	g := newGuard(t)

	reqs := []aegis.Requirement{{
		Action:     aegis.ActionUpdate,
		Subject:    aegis.SubjectUser,
		Conditions: map[string]any{"id": "$params.id"},
	}}

	// The user role grants update User where id equals the principal's id.
	principal := &aegis.Principal{ID: "u1", RoleName: aegis.RoleUser}

	outcome := g.Decide(context.Background(), reqs, &aegis.RequestContext{
		User:   principal,
		Params: map[string]string{"id": "u1"},
	})
	if !outcome.Allowed {
		t.Fatalf("expected allowed for own profile, got %s: %s", outcome.Decision, outcome.Reason)
	}

	outcome = g.Decide(context.Background(), reqs, &aegis.RequestContext{
		User:   principal,
		Params: map[string]string{"id": "u9"},
	})
	if outcome.Decision != aegis.DecisionDeniedForbidden {
		t.Fatalf("expected denied_forbidden for someone else's profile, got %s", outcome.Decision)
	}
}

func TestDecideUnresolvedReferenceFailsClosed(t *testing.T) {
	g := newGuard(t)

	reqs := []aegis.Requirement{{
		Action:     aegis.ActionUpdate,
		Subject:    aegis.SubjectUser,
		Conditions: map[string]any{"id": "$params.id"},
	}}

	// No params at all: the reference resolves to the undefined sentinel,
	// which never equals the rule's owner condition.
	outcome := g.Decide(context.Background(), reqs, &aegis.RequestContext{
		User: &aegis.Principal{ID: "u1", RoleName: aegis.RoleUser},
	})
	if outcome.Decision != aegis.DecisionDeniedForbidden {
		t.Fatalf("expected fail-closed denial, got %s", outcome.Decision)
	}
}

func TestDecideMultipleRequirementsAreANDed(t *testing.T) {
	g := newGuard(t)

	reqs := []aegis.Requirement{
		{Action: aegis.ActionRead, Subject: aegis.SubjectCategory},
		{Action: aegis.ActionDelete, Subject: aegis.SubjectSystemSetting},
	}

	outcome := g.Decide(context.Background(), reqs, &aegis.RequestContext{
		User: &aegis.Principal{ID: "u1", RoleName: aegis.RoleUser},
	})
	if outcome.Decision != aegis.DecisionDeniedForbidden {
		t.Fatalf("one failing requirement must deny, got %s", outcome.Decision)
	}

	outcome = g.Decide(context.Background(), reqs, &aegis.RequestContext{
		User: &aegis.Principal{ID: "a1", RoleName: aegis.RoleAdmin},
	})
	if !outcome.Allowed {
		t.Fatalf("admin should satisfy both requirements, got %s", outcome.Decision)
	}
	if len(outcome.MatchedBy) != 2 {
		t.Fatalf("expected two matched rules, got %d", len(outcome.MatchedBy))
	}
}

func TestDecideAdminWildcard(t *testing.T) {
	g := newGuard(t)

	outcome := g.Decide(context.Background(), []aegis.Requirement{{
		Action:     aegis.ActionDelete,
		Subject:    aegis.SubjectDocument,
		Conditions: map[string]any{"uploaderId": "anything"},
	}}, &aegis.RequestContext{
		User: &aegis.Principal{ID: "a1", RoleName: aegis.RoleAdmin},
	})
	if !outcome.Allowed {
		t.Fatalf("admin wildcard should allow, got %s", outcome.Decision)
	}
	if outcome.MatchedBy[0].Source != "role" {
		t.Fatalf("expected role-sourced match, got %s", outcome.MatchedBy[0].Source)
	}
}

func TestDecideOperationWithRegistry(t *testing.T) {
	reg := requirement.NewRegistry()
	reg.MustRegister("users.update", aegis.Requirement{
		Action:     aegis.ActionUpdate,
		Subject:    aegis.SubjectUser,
		Conditions: map[string]any{"id": "$params.id"},
	})

	g := newGuard(t, aegis.WithRequirementSource(reg))

	outcome, err := g.DecideOperation(context.Background(), "users.update", &aegis.RequestContext{
		User:   &aegis.Principal{ID: "u1", RoleName: aegis.RoleUser},
		Params: map[string]string{"id": "u1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Allowed {
		t.Fatalf("expected allowed, got %s: %s", outcome.Decision, outcome.Reason)
	}

	_, err = g.DecideOperation(context.Background(), "users.delete", &aegis.RequestContext{})
	if !errors.Is(err, aegis.ErrOperationNotRegistered) {
		t.Fatalf("expected ErrOperationNotRegistered, got %v", err)
	}
}

func TestDecideOperationWithoutSource(t *testing.T) {
	g := newGuard(t)
	_, err := g.DecideOperation(context.Background(), "anything", &aegis.RequestContext{})
	if !errors.Is(err, aegis.ErrOperationNotRegistered) {
		t.Fatalf("expected ErrOperationNotRegistered, got %v", err)
	}
}

func TestEnforce(t *testing.T) {
	g := newGuard(t)

	reqs := []aegis.Requirement{{Action: aegis.ActionRead, Subject: aegis.SubjectCategory}}

	if err := g.Enforce(context.Background(), reqs, &aegis.RequestContext{}); !errors.Is(err, aegis.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	rctx := &aegis.RequestContext{User: &aegis.Principal{ID: "u1", RoleName: aegis.RoleUser}}
	if err := g.Enforce(context.Background(), reqs, rctx); err != nil {
		t.Fatalf("expected allowed, got %v", err)
	}

	denied := []aegis.Requirement{{Action: aegis.ActionDelete, Subject: aegis.SubjectSystemSetting}}
	if err := g.Enforce(context.Background(), denied, rctx); !errors.Is(err, aegis.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestDecideFeedsDecisionLog(t *testing.T) {
	log := decisionlog.NewMemory()
	reg := requirement.NewRegistry()
	reg.MustRegister("categories.read", aegis.Requirement{
		Action: aegis.ActionRead, Subject: aegis.SubjectCategory,
	})

	g := newGuard(t,
		aegis.WithRequirementSource(reg),
		aegis.WithPlugin(decisionlog.NewPlugin(log)),
	)

	_, err := g.DecideOperation(context.Background(), "categories.read", &aegis.RequestContext{
		User: &aegis.Principal{ID: "u1", RoleName: aegis.RoleUser},
	})
	if err != nil {
		t.Fatal(err)
	}

	entries, err := log.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Operation != "categories.read" || e.SubjectID != "u1" || e.Decision != string(aegis.DecisionAllowed) {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

type failingHook struct{}

func (failingHook) Name() string { return "failing" }

func (failingHook) OnAfterDecide(_ context.Context, _, _, _ any) error {
	return errors.New("hook boom")
}

func TestPluginOptionOrderDoesNotLoseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// The plugin option appears before the logger option.
	g := newGuard(t,
		aegis.WithPlugin(failingHook{}),
		aegis.WithLogger(logger),
	)

	g.Decide(context.Background(), nil, &aegis.RequestContext{})

	if !strings.Contains(buf.String(), "hook boom") {
		t.Fatalf("hook error not logged to the configured logger: %q", buf.String())
	}
}

func TestStoredPermissionsFlowThroughDecide(t *testing.T) {
	g := newGuard(t)

	outcome := g.Decide(context.Background(), []aegis.Requirement{{
		Action: aegis.ActionShare, Subject: aegis.SubjectDocument,
	}}, &aegis.RequestContext{
		User: &aegis.Principal{
			ID:       "u1",
			RoleName: "wizard",
			StoredPermissions: []any{
				map[string]any{"action": "share", "subject": "Document"},
			},
		},
	})
	if !outcome.Allowed {
		t.Fatalf("stored permission should allow share, got %s", outcome.Decision)
	}
	if outcome.MatchedBy[0].Source != "stored" {
		t.Fatalf("expected stored-sourced match, got %s", outcome.MatchedBy[0].Source)
	}
}

func TestDecideIsDeterministicUnderConcurrency(t *testing.T) {
	g := newGuard(t)

	reqs := []aegis.Requirement{{
		Action:     aegis.ActionDelete,
		Subject:    aegis.SubjectDocument,
		Conditions: map[string]any{"uploaderId": "$user.id"},
	}}
	rctx := &aegis.RequestContext{User: &aegis.Principal{ID: "u1", RoleName: aegis.RoleUser}}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				outcome := g.Decide(context.Background(), reqs, rctx)
				if !outcome.Allowed {
					t.Errorf("expected allowed, got %s", outcome.Decision)
					return
				}
			}
		}()
	}
	wg.Wait()
}
