// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package asset

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
	manage := a.authz.RequireRoles(types.RoleAdmin, types.RoleGroup, types.RoleCompany, types.RoleUser)

	mux.Get("/api/assets", a.list)
	// Registered before /api/assets/{id} so chi does not swallow
	// "categories" as an id.
	mux.Get("/api/assets/categories", a.listCategories)
	mux.With(manage).Post("/api/assets/categories", a.createCategory)
	mux.Get("/api/assets/{id}", a.get)
	mux.With(manage).Post("/api/assets", a.create)
	mux.With(manage).Patch("/api/assets/{id}", a.update)
	mux.With(manage).Delete("/api/assets/{id}", a.delete)
}

type createAssetRequest struct {
	TenantID   string      `json:"tenantId" validate:"omitempty,uuid"`
	Name       string      `json:"name" validate:"required"`
	Model      string      `json:"model"`
	CategoryID *string     `json:"categoryId" validate:"omitempty,uuid"`
	RoomID     *string     `json:"roomId" validate:"omitempty,uuid"`
	SupplierID *string     `json:"supplierId" validate:"omitempty,uuid"`
	Position   *types.Vec3 `json:"position"`
	Rotation   *types.Vec3 `json:"rotation"`
	Scale      *types.Vec3 `json:"scale"`
	Price      float64     `json:"price" validate:"gte=0"`
	Currency   string      `json:"currency"`
}

type updateAssetRequest struct {
	Name       *string     `json:"name" validate:"omitempty,min=1"`
	Model      *string     `json:"model"`
	CategoryID *string     `json:"categoryId"`
	RoomID     *string     `json:"roomId"`
	SupplierID *string     `json:"supplierId"`
	Position   *types.Vec3 `json:"position"`
	Rotation   *types.Vec3 `json:"rotation"`
	Scale      *types.Vec3 `json:"scale"`
	Price      *float64    `json:"price" validate:"omitempty,gte=0"`
	Currency   *string     `json:"currency"`
}

type createCategoryRequest struct {
	TenantID string `json:"tenantId" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required"`
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	assets, err := a.service.ListAssets(r.Context(), authorization.ScopeTenantID(r.Context()))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, assets)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	asset, err := a.service.GetAsset(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, asset)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createAssetRequest
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

	asset, err := a.service.CreateAsset(r.Context(), &types.Asset{
		TenantID:   tenantID,
		Name:       req.Name,
		Model:      req.Model,
		CategoryID: req.CategoryID,
		RoomID:     req.RoomID,
		SupplierID: req.SupplierID,
		Price:      req.Price,
		Currency:   req.Currency,
	}, &Transform{
		Position: req.Position,
		Rotation: req.Rotation,
		Scale:    req.Scale,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, asset)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	var req updateAssetRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	asset, err := a.service.UpdateAsset(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"), AssetPatch{
		Name:       req.Name,
		Model:      req.Model,
		CategoryID: req.CategoryID,
		RoomID:     req.RoomID,
		SupplierID: req.SupplierID,
		Position:   req.Position,
		Rotation:   req.Rotation,
		Scale:      req.Scale,
		Price:      req.Price,
		Currency:   req.Currency,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, asset)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteAsset(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.service.ListCategories(r.Context(), authorization.ScopeTenantID(r.Context()))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, categories)
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
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

	c, err := a.service.CreateCategory(r.Context(), &types.Category{
		TenantID: tenantID,
		Name:     req.Name,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, c)
}
