package scheduler_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"photowalk/internal/config"
	"photowalk/internal/services"
	mem "photowalk/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(services.NewReconcileService),
	fx.Provide(provideScheduler),
	fx.Invoke(startScheduler))

func provideScheduler(
	cfg config.Config,
	reconcile services.ReconcileServiceInterface,
	sessions *mem.Sessions,
	log *zap.Logger,
) (*services.Scheduler, error) {
	return services.NewScheduler(reconcile, sessions, cfg.ReconcileInterval, log)
}

func startScheduler(lc fx.Lifecycle, s *services.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return s.Start() },
		OnStop:  func(context.Context) error { return s.Stop() },
	})
}
