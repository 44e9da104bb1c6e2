// Package middleware provides HTTP authorization middleware for aegis.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/aegis"
)

// ContextBuilder assembles the aegis RequestContext from the request.
// The default builder takes the principal from aegis.PrincipalFromContext
// (set by the authentication layer) and copies the declared route params.
type ContextBuilder func(ctx forge.Context) *aegis.RequestContext

// Option configures the middleware.
type Option func(*settings)

type settings struct {
	params  []string
	builder ContextBuilder
}

// WithParams declares the route parameter names to expose to dynamic
// references (e.g. "$params.id").
func WithParams(names ...string) Option {
	return func(s *settings) { s.params = append(s.params, names...) }
}

// WithContextBuilder replaces the default RequestContext assembly, for
// routes that need query or body values in their requirements.
func WithContextBuilder(b ContextBuilder) Option {
	return func(s *settings) { s.builder = b }
}

// RequireOperation enforces the requirements registered for the operation.
// Unauthenticated denials map to 401, forbidden denials to 403; a lookup
// failure for an unregistered operation is a configuration error and maps
// to 500.
func RequireOperation(g *aegis.Guard, operation string, opts ...Option) forge.Middleware {
	s := newSettings(opts)
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			rctx := s.builder(ctx)

			outcome, err := g.DecideOperation(ctx.Context(), operation, rctx)
			if err != nil {
				return errorResponse(ctx, http.StatusInternalServerError, "authorization misconfigured")
			}
			if !outcome.Allowed {
				return denyResponse(ctx, outcome)
			}
			return next(ctx)
		}
	}
}

// Require enforces an inline requirement list without going through the
// registry. All requirements must pass.
func Require(g *aegis.Guard, reqs []aegis.Requirement, opts ...Option) forge.Middleware {
	s := newSettings(opts)
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			rctx := s.builder(ctx)

			outcome := g.Decide(ctx.Context(), reqs, rctx)
			if !outcome.Allowed {
				return denyResponse(ctx, outcome)
			}
			return next(ctx)
		}
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.builder == nil {
		params := s.params
		s.builder = func(ctx forge.Context) *aegis.RequestContext {
			rctx := &aegis.RequestContext{
				User:   aegis.PrincipalFromContext(ctx.Context()),
				Params: make(map[string]string, len(params)),
			}
			for _, name := range params {
				if v := ctx.Param(name); v != "" {
					rctx.Params[name] = v
				}
			}
			return rctx
		}
	}
	return s
}

func denyResponse(ctx forge.Context, outcome *aegis.Outcome) error {
	status := http.StatusForbidden
	if outcome.Decision == aegis.DecisionDeniedUnauthenticated {
		status = http.StatusUnauthorized
	}
	return errorResponse(ctx, status, "access denied")
}

func errorResponse(ctx forge.Context, status int, msg string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(status)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": msg})
}
