package route_fx

import (
	"go.uber.org/fx"
	"photowalk/internal/services"
)

var Module = fx.Provide(services.NewRouteService)
