// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"
	"errors"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/types"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/authorization"
)

// ErrInvalidCredentials covers unknown email, wrong password and
// deactivated accounts alike, so login failures do not leak which part
// was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string      `json:"token"`
	CSRFToken string      `json:"csrfToken"`
	User      *types.User `json:"user"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage    StorageInterface
	issuer     authentication.TokenIssuerInterface
	csrfSecret string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	issuer authentication.TokenIssuerInterface,
	csrfSecret string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    storage,
		issuer:     issuer,
		csrfSecret: csrfSecret,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Login")
	defer span.End()

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().LoginFailure(email, "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		s.logger.Security().LoginFailure(email, "account deactivated")
		return nil, ErrInvalidCredentials
	}

	if !authentication.CheckPassword(user.PasswordHash, password) {
		s.logger.Security().LoginFailure(email, "wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Security().LoginSuccess(user.ID, user.Email)

	return &LoginResult{
		Token:     token,
		CSRFToken: authorization.CSRFToken(user.ID, s.csrfSecret),
		User:      user,
	}, nil
}
