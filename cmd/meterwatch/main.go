package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fieldops/meterwatch/internal/battery"
	"github.com/fieldops/meterwatch/internal/clock"
	"github.com/fieldops/meterwatch/internal/config"
	"github.com/fieldops/meterwatch/internal/dashboard"
	"github.com/fieldops/meterwatch/internal/field"
	"github.com/fieldops/meterwatch/internal/history"
	"github.com/fieldops/meterwatch/internal/importer"
	"github.com/fieldops/meterwatch/internal/logger"
	"github.com/fieldops/meterwatch/internal/meter"
	"github.com/fieldops/meterwatch/internal/metrics"
	"github.com/fieldops/meterwatch/internal/migration"
	"github.com/fieldops/meterwatch/internal/seed"
	"github.com/fieldops/meterwatch/internal/server"
	"github.com/fieldops/meterwatch/internal/station"
	"github.com/fieldops/meterwatch/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		seed.Module,
		metrics.Module,

		// Functional domains
		field.Module,
		battery.Module,
		meter.Module,
		history.Module,
		dashboard.Module,
		station.Module,
		importer.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
