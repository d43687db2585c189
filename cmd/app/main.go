package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"photowalk/cmd/fx/config_fx"
	"photowalk/cmd/fx/controllers_fx"
	"photowalk/cmd/fx/db_fx"
	"photowalk/cmd/fx/memcache_fx"
	"photowalk/cmd/fx/metrics_fx"
	"photowalk/cmd/fx/mission_fx"
	"photowalk/cmd/fx/photo_fx"
	"photowalk/cmd/fx/route_fx"
	"photowalk/cmd/fx/scheduler_fx"
	"photowalk/cmd/fx/session_fx"
	"photowalk/cmd/fx/walk_fx"
	"photowalk/internal/api/controllers"
	"photowalk/internal/config"
	mem "photowalk/pkg/memcache"
	"photowalk/pkg/middleware"
)

func main() {
	fx.New(
		options(),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	).Run()
}

func options() fx.Option {
	return fx.Options(
		config_fx.Module,
		db_fx.Module,
		metrics_fx.Module,
		memcache_fx.Module,
		mission_fx.Module,
		route_fx.Module,
		photo_fx.Module,
		walk_fx.Module,
		session_fx.Module,
		scheduler_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type Controllers struct {
	fx.In

	Mission *controllers.MissionController
	Route   *controllers.RouteController
	Photo   *controllers.PhotoController
	Walk    *controllers.WalkController
	Session *controllers.SessionController
	Health  *controllers.HealthController
}

func ProvideRouter(ctrls Controllers, cfg config.Config, inFlight *mem.InFlight, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.Origins()))

	if cfg.ImageStore == "local" {
		r.Static(cfg.UploadPublicPath, cfg.UploadDir)
	}

	RegisterRoutes(r, ctrls, middleware.InFlightGuard(inFlight))

	return r
}

func RegisterRoutes(r *gin.Engine, ctrls Controllers, guard gin.HandlerFunc) {
	r.GET("/health", ctrls.Health.Health)
	r.GET("/metrics", ctrls.Health.Metrics)

	r.POST("/missions/generate", guard, ctrls.Mission.GenerateMissions)
	r.POST("/route", ctrls.Route.GetRoute)

	photos := r.Group("/photos")
	photos.POST("", guard, ctrls.Photo.UploadPhoto)
	photos.PUT("", guard, ctrls.Photo.UploadPhotos)
	photos.GET("/uploaded", ctrls.Photo.ListUploadedImages)
	photos.DELETE("/uploaded", ctrls.Photo.ClearUploadedImages)

	walks := r.Group("/walks")
	walks.POST("", guard, ctrls.Walk.SaveWalk)
	walks.GET("", ctrls.Walk.ListWalks)
	walks.GET("/:id", ctrls.Walk.GetWalk)

	sessions := r.Group("/sessions")
	sessions.POST("", ctrls.Session.StartSession)
	sessions.GET("/:id", ctrls.Session.GetSession)
	sessions.POST("/:id/captures", ctrls.Session.Capture)
	sessions.POST("/:id/favorites", ctrls.Session.Favorite)
	sessions.POST("/:id/route", ctrls.Session.RoutePoint)
	sessions.GET("/:id/summary", ctrls.Session.Summary)
	sessions.POST("/:id/complete", guard, ctrls.Session.Complete)
}
