//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"cid/internal"
	"cid/internal/controllers"
	"cid/internal/device"
	"cid/internal/providers"
	"cid/internal/services"
	"cid/internal/storage"
	"cid/internal/structures"
	"cid/internal/sweep"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewFileStore,
		storage.NewSnapshotStore,
		device.NewResolver,
		services.NewIntegrityService,
		provideOpsSource,
		sweep.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
