package main

import (
	"github.com/smallretail/legacy-api/internal/assistant"
	"github.com/smallretail/legacy-api/internal/config"
	"github.com/smallretail/legacy-api/internal/migration"
	"github.com/smallretail/legacy-api/internal/observability"
	"github.com/smallretail/legacy-api/internal/order"
	"github.com/smallretail/legacy-api/internal/product"
	"github.com/smallretail/legacy-api/internal/server"
	"github.com/smallretail/legacy-api/internal/tempo"
	"github.com/smallretail/legacy-api/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,

		// Domains
		product.Module,
		order.Module,
		tempo.Module,
		assistant.Module,

		// HTTP surface
		server.Module,
	)

	app.Run()
}
