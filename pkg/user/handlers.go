// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package user

import (
	"net/http"
	"slices"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/internal/validation"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/authorization"
	"github.com/asset3d/facility-service/pkg/web"
)

// manageableRoles limits which roles a caller may grant or act on.
// Only admins hand out the admin and group roles: both see past the
// caller's own tenant, so a tenant-scoped manager must not be able to
// mint them.
var manageableRoles = map[string][]string{
	types.RoleAdmin:   {types.RoleAdmin, types.RoleGroup, types.RoleCompany, types.RoleUser, types.RoleSupplier},
	types.RoleGroup:   {types.RoleCompany, types.RoleUser, types.RoleSupplier},
	types.RoleCompany: {types.RoleCompany, types.RoleUser, types.RoleSupplier},
}

func canManageRole(callerRole, role string) bool {
	return slices.Contains(manageableRoles[callerRole], role)
}

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

	mux.Get("/api/users", a.list)
	mux.Get("/api/users/{id}", a.get)
	mux.With(manage).Post("/api/users", a.create)
	mux.With(manage).Patch("/api/users/{id}", a.update)
	mux.With(manage).Delete("/api/users/{id}", a.delete)
}

type createUserRequest struct {
	TenantID    string   `json:"tenantId" validate:"omitempty,uuid"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Name        string   `json:"name" validate:"required"`
	Role        string   `json:"role" validate:"required,oneof=admin group company user supplier"`
	Permissions []string `json:"permissions"`
}

type updateUserRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Role        *string  `json:"role" validate:"omitempty,oneof=admin group company user supplier"`
	Active      *bool    `json:"active"`
	Password    *string  `json:"password" validate:"omitempty,min=8"`
	Permissions []string `json:"permissions"`
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	users, err := a.service.ListUsers(r.Context(), authorization.ScopeTenantID(r.Context()))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, users)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	u, err := a.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	if !authorization.CanAccessTenant(r.Context(), u.TenantID) {
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	web.WriteJSON(w, http.StatusOK, u)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
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

	principal, ok := authentication.PrincipalFromContext(r.Context())
	if !ok {
		web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
		return
	}
	if !canManageRole(principal.Role, req.Role) {
		a.logger.Security().AccessDenied(principal.ID, r.URL.Path, "role grant not allowed")
		web.WriteError(w, http.StatusForbidden, "forbidden", "cannot assign this role")
		return
	}

	u, err := a.service.CreateUser(r.Context(), &types.User{
		TenantID:    tenantID,
		Email:       req.Email,
		Name:        req.Name,
		Role:        req.Role,
		Active:      true,
		Permissions: req.Permissions,
	}, req.Password)
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, u)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := a.service.GetUser(r.Context(), id)
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}
	if !authorization.CanAccessTenant(r.Context(), existing.TenantID) {
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	var req updateUserRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	principal, ok := authentication.PrincipalFromContext(r.Context())
	if !ok {
		web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
		return
	}
	// Editing one's own account is always allowed; promotion is still
	// gated by the role grant check below.
	if existing.ID != principal.ID && !canManageRole(principal.Role, existing.Role) {
		a.logger.Security().AccessDenied(principal.ID, r.URL.Path, "target role outranks caller")
		web.WriteError(w, http.StatusForbidden, "forbidden", "cannot modify this user")
		return
	}
	if req.Role != nil && !canManageRole(principal.Role, *req.Role) {
		a.logger.Security().AccessDenied(principal.ID, r.URL.Path, "role grant not allowed")
		web.WriteError(w, http.StatusForbidden, "forbidden", "cannot assign this role")
		return
	}

	u, err := a.service.UpdateUser(r.Context(), id, UserPatch{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		Active:      req.Active,
		Password:    req.Password,
		Permissions: req.Permissions,
	})
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, u)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := a.service.GetUser(r.Context(), id)
	if err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}
	if !authorization.CanAccessTenant(r.Context(), existing.TenantID) {
		web.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	principal, ok := authentication.PrincipalFromContext(r.Context())
	if !ok {
		web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
		return
	}
	if !canManageRole(principal.Role, existing.Role) {
		a.logger.Security().AccessDenied(principal.ID, r.URL.Path, "target role outranks caller")
		web.WriteError(w, http.StatusForbidden, "forbidden", "cannot delete this user")
		return
	}

	if err := a.service.DeleteUser(r.Context(), authorization.ScopeTenantID(r.Context()), id); err != nil {
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
