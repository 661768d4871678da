// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package location

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/internal/validation"
	"github.com/asset3d/facility-service/pkg/authorization"
	"github.com/asset3d/facility-service/pkg/web"
)

type API struct {
	service ServiceInterface
	authz   *authorization.Middleware

	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, authz *authorization.Middleware, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		authz:   authz,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	manage := a.authz.RequireRoles(types.RoleAdmin, types.RoleGroup, types.RoleCompany)

	mux.Get("/api/locations", a.list)
	mux.Get("/api/locations/{id}", a.get)
	mux.With(manage).Post("/api/locations", a.create)
	mux.With(manage).Patch("/api/locations/{id}", a.update)
	mux.With(manage).Delete("/api/locations/{id}", a.delete)
}

type createLocationRequest struct {
	TenantID string `json:"tenantId" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type updateLocationRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	locations, err := a.service.ListLocations(r.Context(), authorization.ScopeTenantID(r.Context()))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, locations)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	l, err := a.service.GetLocation(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, l)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	tenantID := req.TenantID
	if tenantID == "" {
		tenantID = authorization.ScopeTenantID(r.Context())
	}
	if tenantID == "" {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "tenantId is required")
		return
	}
	if !authorization.CanAccessTenant(r.Context(), tenantID) {
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	l, err := a.service.CreateLocation(r.Context(), &types.Location{
		TenantID: tenantID,
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, l)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	l, err := a.service.UpdateLocation(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"), LocationPatch{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, l)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteLocation(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
