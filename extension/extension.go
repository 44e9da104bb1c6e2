// Package extension provides a Forge extension entry point for aegis.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/aegis"
	"github.com/xraph/aegis/api"
	"github.com/xraph/aegis/plugin"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "aegis"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Attribute-based authorization decision engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the aegis guard as a Forge extension.
type Extension struct {
	config     Config
	guard      *aegis.Guard
	apiHandler *api.API
	logger     *slog.Logger
	guardOpts  []aegis.Option
	plugins    []plugin.Plugin
}

// New creates an aegis Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Guard returns the underlying aegis guard.
func (e *Extension) Guard() *aegis.Guard { return e.guard }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// Register implements [forge.Extension]. It constructs the guard, registers
// it in the DI container, and optionally registers HTTP routes.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(fapp); err != nil {
		return err
	}

	if err := vessel.Provide(fapp.Container(), func() (*aegis.Guard, error) {
		return e.guard, nil
	}); err != nil {
		return fmt.Errorf("aegis: register guard in container: %w", err)
	}

	return nil
}

func (e *Extension) init(fapp forge.App) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := make([]aegis.Option, 0, len(e.guardOpts)+len(e.plugins)+1)
	opts = append(opts, aegis.WithLogger(logger))

	// Try to resolve a requirement source from the DI container, then let
	// option-provided values override.
	if src, err := forge.Inject[aegis.RequirementSource](fapp.Container()); err == nil {
		opts = append(opts, aegis.WithRequirementSource(src))
	}
	opts = append(opts, e.guardOpts...)

	for _, p := range e.plugins {
		opts = append(opts, aegis.WithPlugin(p))
	}

	g, err := aegis.New(opts...)
	if err != nil {
		return fmt.Errorf("aegis: create guard: %w", err)
	}
	e.guard = g

	e.apiHandler = api.New(g, fapp.Router())

	if !e.config.DisableRoutes {
		if err := e.apiHandler.RegisterRoutes(fapp.Router()); err != nil {
			return fmt.Errorf("aegis: register routes: %w", err)
		}
	}

	return nil
}

// Start implements [forge.Extension]. The guard needs no startup work.
func (e *Extension) Start(_ context.Context) error {
	if e.guard == nil {
		return errors.New("aegis: extension not initialized")
	}
	return nil
}

// Stop implements [forge.Extension]. The guard holds no resources.
func (e *Extension) Stop(_ context.Context) error { return nil }

// Health implements [forge.Extension].
func (e *Extension) Health(_ context.Context) error {
	if e.guard == nil {
		return errors.New("aegis: extension not initialized")
	}
	return nil
}

// Handler returns the HTTP handler for all API routes.
func (e *Extension) Handler() http.Handler {
	if e.apiHandler == nil {
		return http.NotFoundHandler()
	}
	return e.apiHandler.Handler()
}

// RegisterRoutes registers all aegis API routes into a Forge router.
func (e *Extension) RegisterRoutes(router forge.Router) error {
	if e.apiHandler != nil {
		return e.apiHandler.RegisterRoutes(router)
	}
	return nil
}
