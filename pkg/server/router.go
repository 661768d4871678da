// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package server

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/authorization"
)

// EndpointRegistrar mounts a set of routes on the mux.
type EndpointRegistrar interface {
	RegisterEndpoints(mux chi.Router)
}

// RegistrarFunc adapts a plain function to EndpointRegistrar.
type RegistrarFunc func(mux chi.Router)

func (f RegistrarFunc) RegisterEndpoints(mux chi.Router) {
	f(mux)
}

// NewRouter assembles the HTTP surface: public routes stay outside the
// authentication chain, protected routes run through bearer
// authentication, tenant resolution and the CSRF guard in that order.
func NewRouter(
	authn *authentication.Middleware,
	authz *authorization.Middleware,
	monitorMW *monitoring.Middleware,
	tracingMW *tracing.Middleware,
	public []EndpointRegistrar,
	protected []EndpointRegistrar,
	logger logging.LoggerInterface,
) http.Handler {
	mux := chi.NewMux()

	mux.Use(middleware.RequestID)
	mux.Use(monitorMW.ResponseTime())
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", authorization.TenantHeader, authorization.CSRFHeader},
		MaxAge:         300,
	}))

	for _, r := range public {
		r.RegisterEndpoints(mux)
	}

	mux.Group(func(g chi.Router) {
		g.Use(authn.Authenticate())
		g.Use(authz.ResolveTenant())
		g.Use(authz.VerifyCSRF())

		for _, r := range protected {
			r.RegisterEndpoints(g)
		}
	})

	return tracingMW.OpenTelemetry(mux)
}
