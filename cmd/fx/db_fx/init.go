package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"photowalk/internal/config"
	"photowalk/internal/infra"
	"photowalk/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	repositories.NewWalkRepository,
	repositories.NewPhotoRepository,
	repositories.NewUploadedImageRepository)

// provideDB never fails: a nil handle puts every repository in degraded mode.
func provideDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *gorm.DB {
	db := infra.OpenDatabase(cfg, log)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db, log)
			return nil
		},
	})
	return db
}
