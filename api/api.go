// Package api provides HTTP handlers for the aegis decision engine, for
// service-to-service callers that cannot link the guard directly.
package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/aegis"
)

// API wires the aegis HTTP handlers together.
type API struct {
	guard  *aegis.Guard
	router forge.Router
}

// New creates an API from a Guard and a Forge router.
func New(g *aegis.Guard, router forge.Router) *API {
	return &API{guard: g, router: router}
}

// Handler returns the fully assembled http.Handler with all routes.
func (a *API) Handler() http.Handler {
	if a.router == nil {
		a.router = forge.NewRouter()
	}
	if err := a.RegisterRoutes(a.router); err != nil {
		panic("aegis: register routes: " + err.Error())
	}
	return a.router.Handler()
}

// RegisterRoutes registers all API routes into the given Forge router.
func (a *API) RegisterRoutes(router forge.Router) error {
	return a.registerDecideRoutes(router)
}
