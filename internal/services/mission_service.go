package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"photowalk/internal/models/request_models"
	"photowalk/internal/models/response_models"
	"photowalk/internal/walk"
	"photowalk/pkg/metrics"
	"photowalk/pkg/utils"
)

const (
	ReasonAIGenerated = "ai_generated"
	ReasonNoAPIKey    = "no_api_key"
	ReasonError       = "error"
)

type MissionServiceInterface interface {
	// GenerateMissions always yields a full batch; the debug block tells
	// whether it came from the generator or the defaults.
	GenerateMissions(ctx context.Context, req request_models.GenerateMissionsRequest) response_models.GenerateMissionsResponse
}

type MissionService struct {
	gateway MissionGateway
	metrics *metrics.WalkMetrics
	log     *zap.Logger
	now     func() time.Time
}

func NewMissionService(gateway MissionGateway, m *metrics.WalkMetrics, log *zap.Logger) MissionServiceInterface {
	return &MissionService{gateway: gateway, metrics: m, log: log, now: time.Now}
}

func (s *MissionService) GenerateMissions(ctx context.Context, req request_models.GenerateMissionsRequest) response_models.GenerateMissionsResponse {
	prompt := MissionPrompt{
		StartLocation: strings.TrimSpace(req.StartLocation),
		EndLocation:   strings.TrimSpace(req.EndLocation),
		Season:        strings.TrimSpace(req.Season),
		TimeOfDay:     strings.TrimSpace(req.TimeOfDay),
	}
	now := s.now()
	if prompt.Season == "" {
		prompt.Season = walk.SeasonOf(now).Label()
	}
	if prompt.TimeOfDay == "" {
		prompt.TimeOfDay = walk.TimeOfDayOf(now).Label()
	}

	drafts, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		reason := ReasonError
		debug := response_models.MissionDebug{UsedDefault: true}
		if errors.Is(err, utils.ErrMissingCredentials) {
			reason = ReasonNoAPIKey
			s.log.Warn("Mission generator not configured, using default missions")
		} else {
			debug.Error = err.Error()
			s.log.Warn("Mission generation failed, using default missions", zap.Error(err))
		}
		debug.Reason = reason
		s.metrics.RecordMissions(reason)

		return response_models.GenerateMissionsResponse{
			Missions: walk.DefaultMissions(),
			Debug:    debug,
		}
	}

	s.metrics.RecordMissions(ReasonAIGenerated)
	return response_models.GenerateMissionsResponse{
		Missions: walk.NewMissionBatch(drafts),
		Debug:    response_models.MissionDebug{Reason: ReasonAIGenerated},
	}
}
