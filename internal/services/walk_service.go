package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	dbm "photowalk/internal/models/db_models"
	"photowalk/internal/models/request_models"
	"photowalk/internal/models/response_models"
	"photowalk/internal/repositories"
	"photowalk/internal/walk"
	"photowalk/pkg/metrics"
	"photowalk/pkg/utils"
)

const (
	MsgWalkRecordedLocally = "散歩データを記録しました"
	MsgHistoryUnavailable  = "データベース接続エラーのため履歴を表示できません"
)

type WalkServiceInterface interface {
	// SaveWalk never fails from the caller's point of view: when storage is
	// unavailable it acknowledges with a locally generated id.
	SaveWalk(ctx context.Context, req request_models.CreateWalkRequest) *response_models.SaveWalkResponse
	// ListWalks returns newest first, or an empty list plus an advisory
	// message when storage is unavailable.
	ListWalks(ctx context.Context) *response_models.ListWalksResponse
	GetWalk(ctx context.Context, walkId string) (*response_models.WalkResponse, error)
}

type WalkService struct {
	walkRepo   repositories.WalkRepository
	uploadRepo repositories.UploadedImageRepository
	metrics    *metrics.WalkMetrics
	log        *zap.Logger
	now        func() time.Time
}

func NewWalkService(
	walkRepo repositories.WalkRepository,
	uploadRepo repositories.UploadedImageRepository,
	m *metrics.WalkMetrics,
	log *zap.Logger,
) WalkServiceInterface {
	return &WalkService{
		walkRepo:   walkRepo,
		uploadRepo: uploadRepo,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

func (s *WalkService) SaveWalk(ctx context.Context, req request_models.CreateWalkRequest) *response_models.SaveWalkResponse {
	now := s.now()

	record := &dbm.Walk{
		StartLat:  req.StartLat.Value,
		StartLng:  req.StartLng.Value,
		EndLat:    req.EndLat.Value,
		EndLng:    req.EndLng.Value,
		Missions:  missionsBlob(req.Missions),
		StartTime: req.StartTime.OrNow(now),
		EndTime:   req.EndTime.OrNow(now),
		Distance:  req.Distance.Ptr(),
		Steps:     req.Steps.Ptr(),
	}

	for _, p := range req.Photos {
		missionType := strings.TrimSpace(p.MissionType)
		if missionType == "" {
			missionType = string(walk.MissionTypeMission)
		}
		record.Photos = append(record.Photos, dbm.Photo{
			ClientID:    p.ID,
			MissionType: missionType,
			MissionName: p.MissionName,
			Lat:         p.Lat.Value,
			Lng:         p.Lng.Value,
			ImageURL:    p.ImageURL,
			Timestamp:   p.Timestamp.OrNow(now),
		})
	}
	for _, r := range req.Routes {
		record.Routes = append(record.Routes, dbm.WalkRoute{
			Lat:       r.Lat.Value,
			Lng:       r.Lng.Value,
			Timestamp: r.Timestamp.OrNow(now),
		})
	}

	if err := s.walkRepo.CreateWalk(ctx, record); err != nil {
		localID := uuid.NewString()
		s.log.Warn("Walk save failed, acknowledging locally",
			zap.String("local_id", localID), zap.Error(err))
		s.metrics.RecordWalkSave("degraded")

		return &response_models.SaveWalkResponse{
			Success: true,
			Message: MsgWalkRecordedLocally,
			Walk:    &response_models.WalkResponse{ID: localID},
		}
	}

	s.metrics.RecordWalkSave("ok")
	resp := toWalkResponse(*record, nil)
	return &response_models.SaveWalkResponse{Walk: &resp}
}

func (s *WalkService) ListWalks(ctx context.Context) *response_models.ListWalksResponse {
	walks, err := s.walkRepo.ListWalksNewestFirst(ctx)
	if err != nil {
		s.log.Warn("Walk history unavailable", zap.Error(err))
		s.metrics.RecordWalkList("degraded")
		return &response_models.ListWalksResponse{
			Walks:   []response_models.WalkResponse{},
			Message: MsgHistoryUnavailable,
		}
	}

	uploads := s.uploadsForMissingImages(ctx, walks)

	out := make([]response_models.WalkResponse, 0, len(walks))
	for _, w := range walks {
		out = append(out, toWalkResponse(w, uploads))
	}
	s.metrics.RecordWalkList("ok")
	return &response_models.ListWalksResponse{Walks: out}
}

func (s *WalkService) GetWalk(ctx context.Context, walkId string) (*response_models.WalkResponse, error) {
	if _, err := uuid.Parse(walkId); err != nil {
		return nil, utils.ErrNotFound
	}

	w, err := s.walkRepo.GetWalkById(ctx, walkId)
	if err != nil {
		s.log.Warn("Walk lookup failed", zap.String("walk_id", walkId), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if w == nil {
		return nil, utils.ErrNotFound
	}

	resp := toWalkResponse(*w, s.uploadsForMissingImages(ctx, []dbm.Walk{*w}))
	return &resp, nil
}

// uploadsForMissingImages looks up side-table uploads for photos that have
// no image yet. A failed lookup only means no backfill.
func (s *WalkService) uploadsForMissingImages(ctx context.Context, walks []dbm.Walk) map[string]dbm.UploadedImage {
	var keys []string
	for _, w := range walks {
		for _, p := range w.Photos {
			if p.ImageURL != "" {
				continue
			}
			keys = append(keys, p.ID.String())
			if p.ClientID != "" {
				keys = append(keys, p.ClientID)
			}
		}
	}
	if len(keys) == 0 {
		return nil
	}

	found, err := s.uploadRepo.FindLatestByPhotoIds(ctx, keys)
	if err != nil {
		s.log.Warn("Uploaded image lookup failed", zap.Error(err))
		return nil
	}
	return found
}

func missionsBlob(raw json.RawMessage) datatypes.JSON {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || !json.Valid([]byte(trimmed)) {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(trimmed)
}

func parseMissions(blob datatypes.JSON) []walk.Mission {
	missions := []walk.Mission{}
	if len(blob) == 0 {
		return missions
	}
	if err := json.Unmarshal(blob, &missions); err != nil {
		return []walk.Mission{}
	}
	return missions
}

func toWalkResponse(w dbm.Walk, uploads map[string]dbm.UploadedImage) response_models.WalkResponse {
	endTime := w.EndTime
	resp := response_models.WalkResponse{
		ID:        w.ID.String(),
		StartLat:  w.StartLat,
		StartLng:  w.StartLng,
		EndLat:    w.EndLat,
		EndLng:    w.EndLng,
		Missions:  parseMissions(w.Missions),
		StartTime: w.StartTime,
		EndTime:   &endTime,
		Distance:  w.Distance,
		Steps:     w.Steps,
		Photos:    make([]response_models.PhotoResponse, 0, len(w.Photos)),
		Routes:    make([]response_models.RoutePointResponse, 0, len(w.Routes)),
		CreatedAt: w.CreatedAt,
	}

	for _, p := range w.Photos {
		imageURL := p.ImageURL
		if imageURL == "" {
			if up, ok := uploads[p.ClientID]; ok && p.ClientID != "" {
				imageURL = up.ImageURL
			} else if up, ok := uploads[p.ID.String()]; ok {
				imageURL = up.ImageURL
			}
		}
		resp.Photos = append(resp.Photos, response_models.PhotoResponse{
			ID:          p.ID.String(),
			ClientID:    p.ClientID,
			WalkID:      p.WalkID.String(),
			MissionType: p.MissionType,
			MissionName: p.MissionName,
			Lat:         p.Lat,
			Lng:         p.Lng,
			ImageURL:    imageURL,
			Timestamp:   p.Timestamp,
		})
	}
	for _, r := range w.Routes {
		resp.Routes = append(resp.Routes, response_models.RoutePointResponse{
			ID:        r.ID.String(),
			WalkID:    r.WalkID.String(),
			Lat:       r.Lat,
			Lng:       r.Lng,
			Timestamp: r.Timestamp,
		})
	}
	return resp
}
