// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package building

import (
	"math"
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

	mux.Get("/api/buildings", a.list)
	mux.Get("/api/buildings/{id}", a.get)
	mux.With(manage).Post("/api/buildings", a.create)
	mux.With(manage).Put("/api/buildings/{id}", a.save)
	mux.With(manage).Delete("/api/buildings/{id}", a.delete)
}

type createBuildingRequest struct {
	TenantID   string  `json:"tenantId" validate:"omitempty,uuid"`
	Name       string  `json:"name" validate:"required"`
	LocationID *string `json:"locationId" validate:"omitempty,uuid"`
}

type floorPayload struct {
	ID     string   `json:"id"`
	Number *float64 `json:"number"`
	Name   string   `json:"name"`
}

type roomPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	FloorNumber *float64 `json:"floorNumber"`
	Width       float64  `json:"width" validate:"gte=0"`
	Depth       float64  `json:"depth" validate:"gte=0"`
	Height      float64  `json:"height" validate:"gte=0"`
	PosX        float64  `json:"posX"`
	PosY        float64  `json:"posY"`
}

type assetPayload struct {
	ID         string      `json:"id"`
	Name       string      `json:"name" validate:"required"`
	Model      string      `json:"model"`
	CategoryID *string     `json:"categoryId"`
	RoomID     *string     `json:"roomId"`
	SupplierID *string     `json:"supplierId"`
	Position   *types.Vec3 `json:"position"`
	Rotation   *types.Vec3 `json:"rotation"`
	Scale      *types.Vec3 `json:"scale"`
	Price      float64     `json:"price" validate:"gte=0"`
	Currency   string      `json:"currency"`
}

type saveBuildingRequest struct {
	Name       string         `json:"name"`
	LocationID *string        `json:"locationId" validate:"omitempty,uuid"`
	Floors     []floorPayload `json:"floors" validate:"dive"`
	Rooms      []roomPayload  `json:"rooms" validate:"dive"`
	Assets     []assetPayload `json:"assets" validate:"dive"`
}

// floorNumber normalizes a client-supplied floor number: missing or
// non-finite values land on floor 1.
func floorNumber(v *float64) int {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 1
	}
	return int(*v)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	buildings, err := a.service.ListBuildings(r.Context(), authorization.ScopeTenantID(r.Context()))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, buildings)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	structure, err := a.service.GetStructure(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, structure)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createBuildingRequest
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

	b, err := a.service.CreateBuilding(r.Context(), &types.Building{
		TenantID:   tenantID,
		Name:       req.Name,
		LocationID: req.LocationID,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, b)
}

func (a *API) save(w http.ResponseWriter, r *http.Request) {
	var req saveBuildingRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	contents := &Contents{
		Name:       req.Name,
		LocationID: req.LocationID,
		Floors:     make([]*types.Floor, 0, len(req.Floors)),
		Rooms:      make([]*types.Room, 0, len(req.Rooms)),
		Assets:     make([]*types.Asset, 0, len(req.Assets)),
	}

	for _, f := range req.Floors {
		contents.Floors = append(contents.Floors, &types.Floor{
			ID:     f.ID,
			Number: floorNumber(f.Number),
			Name:   f.Name,
		})
	}

	for _, rm := range req.Rooms {
		contents.Rooms = append(contents.Rooms, &types.Room{
			ID:          rm.ID,
			Name:        rm.Name,
			FloorNumber: floorNumber(rm.FloorNumber),
			Width:       rm.Width,
			Depth:       rm.Depth,
			Height:      rm.Height,
			PosX:        rm.PosX,
			PosY:        rm.PosY,
		})
	}

	for _, asset := range req.Assets {
		placed := &types.Asset{
			ID:         asset.ID,
			Name:       asset.Name,
			Model:      asset.Model,
			CategoryID: asset.CategoryID,
			RoomID:     asset.RoomID,
			SupplierID: asset.SupplierID,
			Scale:      types.DefaultScale,
			Price:      asset.Price,
			Currency:   asset.Currency,
		}
		if asset.Position != nil {
			placed.Position = *asset.Position
		}
		if asset.Rotation != nil {
			placed.Rotation = *asset.Rotation
		}
		if asset.Scale != nil {
			placed.Scale = *asset.Scale
		}
		contents.Assets = append(contents.Assets, placed)
	}

	structure, err := a.service.SaveContents(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id"), contents)
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, structure)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteBuilding(r.Context(), authorization.ScopeTenantID(r.Context()), chi.URLParam(r, "id")); err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
