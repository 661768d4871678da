// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/internal/version"
	"github.com/asset3d/facility-service/pkg/web"
)

// PingerInterface is what the health check needs from the database
// client. In mock mode no pinger is wired and the dependency is
// reported as up.
type PingerInterface interface {
	Ping(ctx context.Context) error
}

type statusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}

type API struct {
	pinger PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(pinger PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		pinger:  pinger,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/status", a.status)
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.status")
	defer span.End()

	resp := statusResponse{Status: "ok", Database: "up", Version: version.Version}

	tags := map[string]string{"dependency": "database"}

	if a.pinger != nil {
		if err := a.pinger.Ping(ctx); err != nil {
			a.logger.Errorf("database ping failed: %v", err)
			if err := a.monitor.SetDependencyAvailability(tags, 0); err != nil {
				a.logger.Errorf("failed to set dependency metric: %v", err)
			}
			resp.Status = "degraded"
			resp.Database = "down"
			web.WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	if err := a.monitor.SetDependencyAvailability(tags, 1); err != nil {
		a.logger.Errorf("failed to set dependency metric: %v", err)
	}
	web.WriteJSON(w, http.StatusOK, resp)
}
