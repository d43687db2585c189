package controllers_fx

import (
	"go.uber.org/fx"
	"photowalk/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewMissionController),
	fx.Provide(controllers.NewRouteController),
	fx.Provide(controllers.NewPhotoController),
	fx.Provide(controllers.NewWalkController),
	fx.Provide(controllers.NewSessionController),
	fx.Provide(controllers.NewHealthController))
