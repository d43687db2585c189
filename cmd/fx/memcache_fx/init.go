package memcache_fx

import (
	"go.uber.org/fx"
	"photowalk/internal/config"
	mem "photowalk/pkg/memcache"
)

var Module = fx.Provide(
	provideSessions,
	provideSessionStore,
	mem.NewInFlight)

func provideSessions(cfg config.Config) *mem.Sessions {
	return mem.NewSessions(cfg.SessionTTL)
}

func provideSessionStore(s *mem.Sessions) mem.SessionStore {
	return s
}
