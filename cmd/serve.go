// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/asset3d/facility-service/internal/config"
	"github.com/asset3d/facility-service/internal/db"
	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/monitoring/prometheus"
	"github.com/asset3d/facility-service/internal/seeding"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
	"github.com/asset3d/facility-service/pkg/asset"
	"github.com/asset3d/facility-service/pkg/auth"
	"github.com/asset3d/facility-service/pkg/authentication"
	"github.com/asset3d/facility-service/pkg/authorization"
	"github.com/asset3d/facility-service/pkg/building"
	"github.com/asset3d/facility-service/pkg/group"
	"github.com/asset3d/facility-service/pkg/location"
	"github.com/asset3d/facility-service/pkg/metrics"
	"github.com/asset3d/facility-service/pkg/server"
	"github.com/asset3d/facility-service/pkg/status"
	"github.com/asset3d/facility-service/pkg/supplier"
	"github.com/asset3d/facility-service/pkg/tenant"
	"github.com/asset3d/facility-service/pkg/user"
	"github.com/asset3d/facility-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	if specs.Debug {
		web.EnableDebug()
	}

	monitor := prometheus.NewMonitor("facility-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	var store storage.StorageInterface
	var pinger status.PingerInterface

	if specs.UseMockStorage() {
		logger.Info("no DSN configured, running in mock mode against the in-memory store")
		mem := storage.NewInMemoryStorage(logger)
		if err := seeding.Seed(context.Background(), mem, logger); err != nil {
			return fmt.Errorf("failed to seed demo data: %v", err)
		}
		store = mem
	} else {
		dbConfig := db.Config{
			DSN:             specs.DSN,
			MaxConns:        specs.DBMaxConns,
			MinConns:        specs.DBMinConns,
			MaxConnLifetime: specs.DBMaxConnLifetime,
			MaxConnIdleTime: specs.DBMaxConnIdleTime,
			TracingEnabled:  specs.TracingEnabled,
		}
		dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
		if err != nil {
			return fmt.Errorf("failed to create database client: %v", err)
		}
		defer dbClient.Close()

		store = storage.NewStorage(dbClient, tracer, monitor, logger)
		pinger = dbClient
	}

	var cache authentication.PrincipalCacheInterface
	if c, err := authentication.NewPrincipalCache(specs.PrincipalCacheTTL); err != nil {
		logger.Errorf("failed to create principal cache, caching disabled: %v", err)
		cache = authentication.NoopPrincipalCache{}
	} else {
		cache = c
	}

	jwtManager := authentication.NewJWTManager(specs.JWTSecret, specs.TokenLifetime)

	authnMiddleware := authentication.NewMiddleware(jwtManager, store, cache, tracer, monitor, logger)
	authzMiddleware := authorization.NewMiddleware(specs.CSRFSecret, tracer, monitor, logger)
	monitorMiddleware := monitoring.NewMiddleware(monitor, logger)
	tracingMiddleware := tracing.NewMiddleware(monitor, logger)

	authAPI := auth.NewAPI(auth.NewService(store, jwtManager, specs.CSRFSecret, tracer, monitor, logger), logger)
	tenantAPI := tenant.NewAPI(tenant.NewService(store, tracer, monitor, logger), authzMiddleware, logger)
	groupAPI := group.NewAPI(group.NewService(store, tracer, monitor, logger), authzMiddleware, logger)
	userAPI := user.NewAPI(user.NewService(store, cache, tracer, monitor, logger), authzMiddleware, logger)
	supplierAPI := supplier.NewAPI(supplier.NewService(store, tracer, monitor, logger), authzMiddleware, logger)
	locationAPI := location.NewAPI(location.NewService(store, tracer, monitor, logger), authzMiddleware, logger)
	assetAPI := asset.NewAPI(asset.NewService(store, tracer, monitor, logger), authzMiddleware, logger)
	buildingAPI := building.NewAPI(building.NewService(store, tracer, monitor, logger), authzMiddleware, logger)
	statusAPI := status.NewAPI(pinger, tracer, monitor, logger)
	metricsAPI := metrics.NewAPI(logger)

	router := server.NewRouter(
		authnMiddleware,
		authzMiddleware,
		monitorMiddleware,
		tracingMiddleware,
		[]server.EndpointRegistrar{authAPI, statusAPI, metricsAPI},
		[]server.EndpointRegistrar{
			server.RegistrarFunc(authAPI.RegisterProtectedEndpoints),
			tenantAPI,
			groupAPI,
			userAPI,
			supplierAPI,
			locationAPI,
			assetAPI,
			buildingAPI,
		},
		logger,
	)

	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
