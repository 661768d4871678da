// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"strings"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/pkg/web"
)

type Middleware struct {
	verifier TokenVerifierInterface
	users    UserProviderInterface
	cache    PrincipalCacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authenticate verifies the bearer credential, resolves the acting user
// and attaches the principal to the request context. A missing or
// invalid token is 401; a resolved but inactive user is 403.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getBearerToken(r.Header)
			if !found {
				web.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing authorization header")
				return
			}

			claims, err := m.verifier.VerifyToken(token)
			if err != nil {
				m.logger.Debugf("JWT verification failed: %v", err)
				web.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			user, cached := m.cache.Get(claims.Subject)
			if !cached {
				user, err = m.users.GetUserByID(ctx, claims.Subject)
				if err != nil {
					if errors.Is(err, storage.ErrNotFound) {
						web.WriteError(w, http.StatusUnauthorized, "unauthorized", "unknown user")
						return
					}
					web.WriteServiceError(w, m.logger, err)
					return
				}
				m.cache.Set(user.ID, user)
			}

			if !user.Active {
				m.logger.Security().AccessDenied(user.ID, r.URL.Path, "account deactivated")
				web.WriteError(w, http.StatusForbidden, "forbidden", "account is deactivated")
				return
			}

			principal := &Principal{
				ID:          user.ID,
				Email:       user.Email,
				Name:        user.Name,
				Role:        user.Role,
				TenantID:    user.TenantID,
				Permissions: user.Permissions,
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}

func (m *Middleware) getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	// Only support "Bearer <token>" format (RFC 6750)
	if !strings.HasPrefix(bearer, "Bearer ") {
		return "", false
	}

	return strings.TrimPrefix(bearer, "Bearer "), true
}

func NewMiddleware(
	verifier TokenVerifierInterface,
	users UserProviderInterface,
	cache PrincipalCacheInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Middleware {
	return &Middleware{
		verifier: verifier,
		users:    users,
		cache:    cache,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
