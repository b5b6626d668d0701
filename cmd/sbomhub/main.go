// Copyright (C) 2025 opencomply
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/opencomply/sbomhub/cmd/sbomhub/api"
	"github.com/opencomply/sbomhub/controllers"
	"github.com/opencomply/sbomhub/database"
	"github.com/opencomply/sbomhub/database/repositories"
	"github.com/opencomply/sbomhub/router"
	"github.com/opencomply/sbomhub/services"
	"github.com/opencomply/sbomhub/shared"
	"github.com/opencomply/sbomhub/storage"

	_ "github.com/lib/pq"
)

//	@title			sbomhub API
//	@version		v1
//	@description	SBOM ingestion and enrichment service

//	@license.name	AGPL-3

// @host		localhost:8080
// @BasePath	/api/v1
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	// the pool backs both GORM and the diagnostics endpoints
	poolCfg := database.GetPoolConfigFromEnv()
	if poolCfg.Host == "" || poolCfg.DBName == "" {
		slog.Error("incomplete database configuration, POSTGRES_HOST and POSTGRES_DB are required")
		panic(errors.New("failed to setup database connection"))
	}
	pool := database.NewPgxConnPool(poolCfg)
	db := database.NewGormDB(pool)

	// Run database migrations using the existing database connection
	disableAutoMigrate := os.Getenv("DISABLE_AUTOMIGRATE")
	if disableAutoMigrate != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db),
		fx.Supply(pool),
		fx.Provide(api.NewServer),
		repositories.Module,
		services.Module,
		controllers.Module,
		storage.Module,
		router.RouterModule,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(apiV1Router router.APIV1Router) {}),
		fx.Invoke(func(projectRouter router.ProjectRouter) {}),
		fx.Invoke(func(srv api.Server) {}),
	).Run()
}
