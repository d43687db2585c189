package photo_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"photowalk/internal/config"
	"photowalk/internal/repositories"
	"photowalk/internal/services"
	"photowalk/pkg/metrics"
)

var Module = fx.Provide(
	provideImageStore,
	providePhotoService)

func provideImageStore(cfg config.Config, log *zap.Logger) services.ImageStore {
	store := services.NewImageStore(context.Background(), cfg, log)
	log.Info("Image store selected", zap.String("store", store.Name()))
	return store
}

func providePhotoService(
	cfg config.Config,
	store services.ImageStore,
	photoRepo repositories.PhotoRepository,
	uploadRepo repositories.UploadedImageRepository,
	m *metrics.WalkMetrics,
	log *zap.Logger,
) services.PhotoServiceInterface {
	return services.NewPhotoService(store, photoRepo, uploadRepo, cfg.UploadMaxBytes, cfg.BatchUploadPause, m, log)
}
