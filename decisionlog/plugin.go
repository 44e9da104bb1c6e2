package decisionlog

import (
	"context"
	"time"

	"github.com/xraph/aegis"
	"github.com/xraph/aegis/id"
	"github.com/xraph/aegis/plugin"
)

// Compile-time hook checks.
var (
	_ plugin.Plugin      = (*Plugin)(nil)
	_ plugin.AfterDecide = (*Plugin)(nil)
)

// Plugin records every guard decision into a Recorder. Register it with
// aegis.WithPlugin.
type Plugin struct {
	recorder Recorder
}

// NewPlugin creates a decision log plugin backed by the given recorder.
func NewPlugin(r Recorder) *Plugin {
	return &Plugin{recorder: r}
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return "decisionlog" }

// OnAfterDecide writes an audit entry for the completed decision.
func (p *Plugin) OnAfterDecide(ctx context.Context, _, rctx, outcome any) error {
	out, ok := outcome.(*aegis.Outcome)
	if !ok {
		return nil
	}

	e := &Entry{
		ID:         id.NewDecisionID(),
		Operation:  aegis.OperationFromContext(ctx),
		Decision:   string(out.Decision),
		Reason:     out.Reason,
		EvalTimeNs: out.EvalTimeNs,
		CreatedAt:  time.Now().UTC(),
	}
	if rc, ok := rctx.(*aegis.RequestContext); ok && rc != nil && rc.User != nil {
		e.SubjectID = rc.User.ID
		e.RoleName = rc.User.RoleName
	}
	return p.recorder.Record(ctx, e)
}
