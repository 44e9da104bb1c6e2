// Package plugin defines the plugin system for the aegis guard.
// Plugins are notified around each authorization decision and can react,
// for example by recording audit entries or emitting metrics.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import "context"

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// BeforeDecide is called before a decision is evaluated. The reqs parameter
// is []aegis.Requirement and rctx is *aegis.RequestContext (passed as any to
// avoid an import cycle with the root package).
type BeforeDecide interface {
	OnBeforeDecide(ctx context.Context, reqs, rctx any) error
}

// AfterDecide is called after a decision completes. The outcome parameter is
// *aegis.Outcome.
type AfterDecide interface {
	OnAfterDecide(ctx context.Context, reqs, rctx, outcome any) error
}
