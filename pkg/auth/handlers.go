// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/validation"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/web"
)

type API struct {
	service ServiceInterface

	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

// RegisterEndpoints mounts the unauthenticated login route.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/auth/login", a.login)
}

// RegisterProtectedEndpoints mounts routes behind the authentication
// middleware.
func (a *API) RegisterProtectedEndpoints(mux chi.Router) {
	mux.Get("/api/auth/me", a.me)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if errs := validation.Check(req); errs != nil {
		web.WriteValidationErrors(w, errs)
		return
	}

	result, err := a.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		web.WriteServiceError(w, a.logger, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, result)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := authentication.PrincipalFromContext(r.Context())
	if !ok {
		web.WriteError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
		return
	}

	web.WriteJSON(w, http.StatusOK, principal)
}
