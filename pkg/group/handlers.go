// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package group

import (
	"errors"
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
	admin := a.authz.RequireRoles(types.RoleAdmin)
	adminOrGroup := a.authz.RequireRoles(types.RoleAdmin, types.RoleGroup)

	mux.With(admin).Get("/api/groups", a.list)
	mux.With(admin).Post("/api/groups", a.create)
	mux.With(adminOrGroup).Get("/api/groups/{id}", a.get)
	mux.With(admin).Patch("/api/groups/{id}", a.update)
	mux.With(admin).Delete("/api/groups/{id}", a.delete)
	mux.With(adminOrGroup).Get("/api/groups/{id}/companies", a.listCompanies)
	mux.With(adminOrGroup).Post("/api/groups/{id}/companies", a.createCompany)
}

type createGroupRequest struct {
	Name     string                 `json:"name" validate:"required"`
	Settings map[string]interface{} `json:"settings"`
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	groups, err := a.service.ListGroups(r.Context())
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, groups)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	g, err := a.service.CreateGroup(r.Context(), req.Name, req.Settings)
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, g)
}

type updateGroupRequest struct {
	Name     *string                `json:"name" validate:"omitempty,min=1"`
	Settings map[string]interface{} `json:"settings"`
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !authorization.CanAccessTenant(r.Context(), id) {
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	g, err := a.service.GetGroup(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotAGroup) {
			web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, g)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateGroupRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	g, err := a.service.UpdateGroup(r.Context(), id, GroupPatch{Name: req.Name, Settings: req.Settings})
	if err != nil {
		if errors.Is(err, ErrNotAGroup) {
			web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, g)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.service.DeleteGroup(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotAGroup) {
			web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (a *API) listCompanies(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	if !authorization.CanAccessTenant(r.Context(), groupID) {
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	companies, err := a.service.ListCompanies(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrNotAGroup) {
			web.WriteError(w, http.StatusBadRequest, "bad_request", "tenant is not a group")
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, companies)
}

func (a *API) createCompany(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	if !authorization.CanAccessTenant(r.Context(), groupID) {
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	var req createGroupRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	c, err := a.service.CreateCompany(r.Context(), groupID, req.Name, req.Settings)
	if err != nil {
		if errors.Is(err, ErrNotAGroup) {
			web.WriteError(w, http.StatusBadRequest, "bad_request", "tenant is not a group")
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, c)
}
