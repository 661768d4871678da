// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package supplier

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

	mux.Get("/api/suppliers", a.list)
	mux.Get("/api/suppliers/{id}", a.get)
	mux.With(manage).Post("/api/suppliers", a.create)
	mux.With(manage).Patch("/api/suppliers/{id}", a.update)
	mux.With(manage).Delete("/api/suppliers/{id}", a.delete)
}

type createSupplierRequest struct {
	TenantID     string `json:"tenantId" validate:"omitempty,uuid"`
	Name         string `json:"name" validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Phone        string `json:"phone"`
}

type updateSupplierRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	suppliers, err := a.service.ListSuppliers(r.Context(), authorization.ScopeTenantID(r.Context()))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, suppliers)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	sup, err := a.service.GetSupplier(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, sup)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createSupplierRequest
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

	sup, err := a.service.CreateSupplier(r.Context(), &types.Supplier{
		TenantID:     tenantID,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, sup)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	var req updateSupplierRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	sup, err := a.service.UpdateSupplier(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"), SupplierPatch{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, sup)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteSupplier(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
