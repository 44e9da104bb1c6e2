package extension

import (
	"log/slog"

	"github.com/xraph/aegis"
	"github.com/xraph/aegis/plugin"
)

// ExtOption configures the aegis Forge extension.
type ExtOption func(*Extension)

// WithConfig sets the extension configuration.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithGuardOptions adds guard-level options.
func WithGuardOptions(opts ...aegis.Option) ExtOption {
	return func(e *Extension) {
		e.guardOpts = append(e.guardOpts, opts...)
	}
}

// WithRequirementSource sets the requirement table used by DecideOperation.
func WithRequirementSource(s aegis.RequirementSource) ExtOption {
	return func(e *Extension) {
		e.guardOpts = append(e.guardOpts, aegis.WithRequirementSource(s))
	}
}

// WithPlugin registers a lifecycle hook plugin.
func WithPlugin(p plugin.Plugin) ExtOption {
	return func(e *Extension) {
		e.plugins = append(e.plugins, p)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = l
	}
}

// WithDisableRoutes disables the registration of HTTP routes.
func WithDisableRoutes() ExtOption {
	return func(e *Extension) {
		e.config.DisableRoutes = true
	}
}
