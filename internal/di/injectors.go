//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"visitors/internal"
	"visitors/internal/controllers"
	"visitors/internal/models"
	"visitors/internal/providers"
	"visitors/internal/storage"
	"visitors/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewFsProvider,
		providers.NewMetricsProvider,
		providers.NewVisitorCacheProvider,

		models.NewSequence,
		wire.Bind(new(models.IDGenerator), new(*models.Sequence)),
		storage.NewRecordStore,
		wire.Bind(new(storage.RecordStoreInterface), new(*storage.RecordStore)),
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
