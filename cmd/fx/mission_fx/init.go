package mission_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"photowalk/internal/config"
	"photowalk/internal/services"
)

var Module = fx.Provide(
	ProvideMissionGateway,
	services.NewMissionService)

// ProvideMissionGateway picks the generator named by MISSION_PROVIDER. A
// missing key is not fatal: the gateway reports it and the service falls
// back to the default missions.
func ProvideMissionGateway(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) services.MissionGateway {
	if !cfg.HasMissionCredentials() {
		log.Warn("Mission generation key not configured, default missions will be used",
			zap.String("provider", cfg.MissionProvider))
	}

	switch cfg.MissionProvider {
	case "gemini":
		gateway, err := services.NewGeminiMissionGateway(context.Background(), cfg)
		if err != nil {
			log.Warn("Failed to create Gemini client, default missions will be used", zap.Error(err))
			return services.NewOpenAIMissionGateway(config.Config{})
		}
		if closer, ok := gateway.(io.Closer); ok {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error { return closer.Close() },
			})
		}
		log.Info("Mission generation via Gemini", zap.String("model", cfg.GeminiModel))
		return gateway
	default:
		if cfg.MissionProvider != "openai" {
			log.Warn("Unknown mission provider, using OpenAI", zap.String("provider", cfg.MissionProvider))
		}
		log.Info("Mission generation via OpenAI", zap.String("model", cfg.OpenAIModel))
		return services.NewOpenAIMissionGateway(cfg)
	}
}
