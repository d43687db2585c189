package session_fx

import (
	"go.uber.org/fx"
	"photowalk/internal/services"
)

var Module = fx.Provide(services.NewSessionService)
