// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/internal/validation"
	"github.com/asset3d/facility-service/pkg/authentication"
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
	mux.Get("/api/tenants", a.list)
	mux.Get("/api/tenants/{id}", a.get)

	mux.With(a.authz.RequireRoles(types.RoleAdmin)).Post("/api/tenants", a.create)
	mux.With(a.authz.RequireRoles(types.RoleAdmin)).Patch("/api/tenants/{id}", a.update)
	mux.With(a.authz.RequireRoles(types.RoleAdmin)).Delete("/api/tenants/{id}", a.delete)
}

type createTenantRequest struct {
	Name     string                 `json:"name" validate:"required"`
	Type     string                 `json:"type" validate:"required,oneof=admin group company"`
	ParentID *string                `json:"parentId" validate:"omitempty,uuid"`
	Settings map[string]interface{} `json:"settings"`
}

type updateTenantRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
	// An empty parentId detaches the tenant from its group.
	ParentID *string                `json:"parentId"`
	Settings map[string]interface{} `json:"settings"`
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFromContext(r.Context())
	if !ok {
		web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
		return
	}

	tenants, err := a.service.ListTenants(r.Context())
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	if principal.Role != types.RoleAdmin {
		visible := make([]*types.Tenant, 0, len(tenants))
		for _, t := range tenants {
			if authorization.CanAccessTenant(r.Context(), t.ID) {
				visible = append(visible, t)
				continue
			}
			// Group callers also see the companies hanging off them.
			if principal.Role == types.RoleGroup && t.ParentID != nil && *t.ParentID == principal.TenantID {
				visible = append(visible, t)
			}
		}
		tenants = visible
	}

	web.WriteJSON(w, http.StatusOK, tenants)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := a.service.GetTenant(r.Context(), id)
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	if !authorization.CanAccessTenant(r.Context(), t.ID) {
		// Same response as a missing row, so callers cannot probe for
		// other tenants' ids.
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	web.WriteJSON(w, http.StatusOK, t)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	t, err := a.service.CreateTenant(r.Context(), req.Name, req.Type, req.ParentID, req.Settings)
	if err != nil {
		if errors.Is(err, ErrInvalidParent) {
			web.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, t)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateTenantRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	patch := TenantPatch{
		Name:     req.Name,
		Settings: req.Settings,
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			patch.ClearParent = true
		} else {
			patch.ParentID = req.ParentID
		}
	}

	t, err := a.service.UpdateTenant(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrInvalidParent) {
			web.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, t)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.service.DeleteTenant(r.Context(), id); err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
