package aegis

import (
	"log/slog"

	"github.com/xraph/aegis/plugin"
)

// Option is a functional option for the Guard.
type Option func(*Guard)

// WithGrants sets the role grant table.
func WithGrants(t GrantTable) Option { return func(g *Guard) { g.grants = t } }

// WithRequirementSource sets the requirement lookup used by DecideOperation.
func WithRequirementSource(s RequirementSource) Option {
	return func(g *Guard) { g.source = s }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(g *Guard) { g.logger = l } }

// WithConfig sets the guard configuration.
func WithConfig(c Config) Option { return func(g *Guard) { g.config = c } }

// WithPlugin registers a plugin with the guard. The plugin registry is
// built in New after all options apply, so plugin and logger options may
// appear in any order.
func WithPlugin(p plugin.Plugin) Option {
	return func(g *Guard) { g.pluginList = append(g.pluginList, p) }
}
