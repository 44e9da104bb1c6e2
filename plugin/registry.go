package plugin

import (
	"context"
	"log/slog"
)

// Named entry types pair a hook with the plugin name for logging.

type beforeDecideEntry struct {
	name string
	hook BeforeDecide
}
type afterDecideEntry struct {
	name string
	hook AfterDecide
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	beforeDecide []beforeDecideEntry
	afterDecide  []afterDecideEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(BeforeDecide); ok {
		r.beforeDecide = append(r.beforeDecide, beforeDecideEntry{name, h})
	}
	if h, ok := p.(AfterDecide); ok {
		r.afterDecide = append(r.afterDecide, afterDecideEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// EmitBeforeDecide notifies all plugins that implement BeforeDecide.
func (r *Registry) EmitBeforeDecide(ctx context.Context, reqs, rctx any) {
	for _, e := range r.beforeDecide {
		if err := e.hook.OnBeforeDecide(ctx, reqs, rctx); err != nil {
			r.logHookError("OnBeforeDecide", e.name, err)
		}
	}
}

// EmitAfterDecide notifies all plugins that implement AfterDecide.
func (r *Registry) EmitAfterDecide(ctx context.Context, reqs, rctx, outcome any) {
	for _, e := range r.afterDecide {
		if err := e.hook.OnAfterDecide(ctx, reqs, rctx, outcome); err != nil {
			r.logHookError("OnAfterDecide", e.name, err)
		}
	}
}

// logHookError logs a hook failure. Hook errors never affect the decision.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Error("aegis plugin hook failed",
		"hook", hook,
		"plugin", pluginName,
		"error", err,
	)
}
