// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"false"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	// DSN may be empty, in which case the service runs in mock mode
	// against the in-memory store.
	DSN      string `envconfig:"dsn"`
	MockMode bool   `envconfig:"mock_mode" default:"false"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	JWTSecret     string        `envconfig:"jwt_secret" required:"true"`
	CSRFSecret    string        `envconfig:"csrf_secret" required:"true"`
	TokenLifetime time.Duration `envconfig:"token_lifetime" default:"24h"`

	// PrincipalCacheTTL bounds how long a resolved user is served from the
	// in-process cache before being re-read from storage.
	PrincipalCacheTTL time.Duration `envconfig:"principal_cache_ttl" default:"30s"`
}

// UseMockStorage reports whether the service should run against the
// in-memory store instead of PostgreSQL.
func (s *EnvSpec) UseMockStorage() bool {
	return s.MockMode || s.DSN == ""
}
