// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/asset3d/facility-service/internal/db"
	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/monitoring"
	"github.com/asset3d/facility-service/internal/seeding"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/tracing"
)

// seedCmd loads the demo dataset into a migrated database.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data",
	Long:  `Load the demo tenant hierarchy, users and building into the database.`,
	Run: func(cmd *cobra.Command, args []string) {
		dsn, _ := cmd.Flags().GetString("dsn")
		if err := seed(cmd, dsn); err != nil {
			cmd.PrintErr(err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string")
	_ = seedCmd.MarkFlagRequired("dsn")

	rootCmd.AddCommand(seedCmd)
}

func seed(cmd *cobra.Command, dsn string) error {
	logger := logging.NewLogger("info")
	defer logger.Sync()

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()

	dbClient, err := db.NewDBClient(db.Config{
		DSN:      dsn,
		MaxConns: 2,
		MinConns: 1,
		// Same lifetimes serve uses; zero would expire connections
		// immediately.
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	return seeding.Seed(cmd.Context(), s, logger)
}
