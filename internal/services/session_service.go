package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"photowalk/internal/models/request_models"
	"photowalk/internal/models/response_models"
	"photowalk/internal/walk"
	mem "photowalk/pkg/memcache"
	"photowalk/pkg/utils"
)

type SessionServiceInterface interface {
	Start(ctx context.Context, req request_models.StartSessionRequest) *response_models.SessionResponse
	Get(ctx context.Context, id string) (*response_models.SessionResponse, error)
	Capture(ctx context.Context, id string, req request_models.CaptureRequest) (*response_models.CaptureResponse, error)
	Favorite(ctx context.Context, id string, req request_models.LocationRequest) (*response_models.CaptureResponse, error)
	RoutePoint(ctx context.Context, id string, req request_models.LocationRequest) (*walk.RoutePoint, error)
	Summary(ctx context.Context, id string) (*walk.Summary, error)
	Complete(ctx context.Context, id string) (*response_models.CompleteSessionResponse, error)
}

type SessionService struct {
	store mem.SessionStore
	walks WalkServiceInterface
	log   *zap.Logger
}

func NewSessionService(store mem.SessionStore, walks WalkServiceInterface, log *zap.Logger) SessionServiceInterface {
	return &SessionService{
		store: store,
		walks: walks,
		log:   log,
	}
}

func (s *SessionService) Start(_ context.Context, req request_models.StartSessionRequest) *response_models.SessionResponse {
	missions := walk.DefaultMissions()
	if len(req.Missions) > 0 {
		drafts := make([]walk.MissionDraft, 0, len(req.Missions))
		for _, m := range req.Missions {
			drafts = append(drafts, walk.MissionDraft{Name: m.Name, Description: m.Description})
		}
		missions = walk.NewMissionBatch(drafts)
	}

	session := walk.NewSession(missions)
	session.StartLocation = locationOf(&req.StartLat, &req.StartLng)
	session.EndLocation = locationOf(&req.EndLat, &req.EndLng)
	s.store.Set(session)

	s.log.Info("Walk session started", zap.String("session_id", session.ID))
	return &response_models.SessionResponse{Session: session.Clone()}
}

func (s *SessionService) Get(_ context.Context, id string) (*response_models.SessionResponse, error) {
	var snapshot *walk.Session
	err := s.update(id, func(live *walk.Session) error {
		snapshot = live.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response_models.SessionResponse{Session: snapshot}, nil
}

func (s *SessionService) Capture(_ context.Context, id string, req request_models.CaptureRequest) (*response_models.CaptureResponse, error) {
	var resp response_models.CaptureResponse
	err := s.update(id, func(live *walk.Session) error {
		photo, err := live.RecordCapture(req.MissionID, locationOf(req.Lat, req.Lng))
		if err != nil {
			return err
		}
		resp.Photo = photo
		for _, m := range live.Missions {
			if m.ID == photo.MissionID {
				m := m
				resp.Mission = &m
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Mission != nil && resp.Mission.Completed {
		resp.Message = fmt.Sprintf("ミッション「%s」を達成しました", resp.Mission.Name)
	} else {
		resp.Message = "写真を記録しました"
	}
	return &resp, nil
}

func (s *SessionService) Favorite(_ context.Context, id string, req request_models.LocationRequest) (*response_models.CaptureResponse, error) {
	var resp response_models.CaptureResponse
	err := s.update(id, func(live *walk.Session) error {
		photo, err := live.RecordFavorite(locationOf(req.Lat, req.Lng))
		resp.Photo = photo
		return err
	})
	if err != nil {
		return nil, err
	}
	resp.Message = "お気に入りの写真を記録しました"
	return &resp, nil
}

func (s *SessionService) RoutePoint(_ context.Context, id string, req request_models.LocationRequest) (*walk.RoutePoint, error) {
	loc := locationOf(req.Lat, req.Lng)
	if loc == nil {
		return nil, utils.ErrNoLocation
	}

	var point walk.RoutePoint
	err := s.update(id, func(live *walk.Session) error {
		point = live.RecordRoutePoint(*loc, req.Timestamp.Time)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func (s *SessionService) Summary(_ context.Context, id string) (*walk.Summary, error) {
	var summary walk.Summary
	err := s.update(id, func(live *walk.Session) error {
		summary = live.Summarize()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Complete takes the session out of the store and hands it to the walk
// store. Only the first of concurrent calls gets the session, so a walk is
// saved at most once.
func (s *SessionService) Complete(ctx context.Context, id string) (*response_models.CompleteSessionResponse, error) {
	session, err := s.store.Consume(id)
	if err != nil {
		if errors.Is(err, mem.ErrSessionExpired) {
			return nil, utils.ErrSessionNotFound
		}
		return nil, err
	}

	summary := session.Summarize()
	saved := s.walks.SaveWalk(ctx, walkRequestFrom(session, summary))

	s.log.Info("Walk session completed",
		zap.String("session_id", id),
		zap.Int("photos", summary.TotalPhotos),
		zap.Int("completed_missions", summary.CompletedMissions))

	return &response_models.CompleteSessionResponse{Summary: summary, Saved: saved}, nil
}

// update runs fn under the store lock and translates domain errors to the
// service error set.
func (s *SessionService) update(id string, fn func(*walk.Session) error) error {
	err := s.store.Update(id, fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mem.ErrSessionExpired):
		return utils.ErrSessionNotFound
	case errors.Is(err, walk.ErrNoLocation):
		return fmt.Errorf("%w: %w", utils.ErrNoLocation, err)
	case errors.Is(err, walk.ErrMissionNotFound):
		return fmt.Errorf("%w: %w", utils.ErrMissionNotFound, err)
	case errors.Is(err, walk.ErrMissionCompleted):
		return fmt.Errorf("%w: %w", utils.ErrMissionCompleted, err)
	default:
		return err
	}
}

// locationOf needs both coordinates to be present and numeric.
func locationOf(lat, lng *request_models.FlexFloat) *walk.Location {
	if lat == nil || lng == nil || !lat.Valid || !lng.Valid {
		return nil
	}
	return &walk.Location{Lat: lat.Value, Lng: lng.Value}
}

func walkRequestFrom(session *walk.Session, summary walk.Summary) request_models.CreateWalkRequest {
	missions, err := json.Marshal(summary.Missions)
	if err != nil {
		missions = []byte("[]")
	}

	distance := request_models.Float(summary.DistanceMeters)
	req := request_models.CreateWalkRequest{
		Missions:  missions,
		Distance:  &distance,
		StartTime: request_models.FlexTime{Time: summary.StartTime},
		EndTime:   request_models.FlexTime{Time: summary.EndTime},
		Photos:    make([]request_models.PhotoInput, 0, len(summary.Photos)),
		Routes:    make([]request_models.RouteInput, 0, len(session.Route)),
	}
	if loc := session.StartLocation; loc != nil {
		req.StartLat, req.StartLng = request_models.Float(loc.Lat), request_models.Float(loc.Lng)
	}
	if loc := session.EndLocation; loc != nil {
		req.EndLat, req.EndLng = request_models.Float(loc.Lat), request_models.Float(loc.Lng)
	}

	for _, p := range summary.Photos {
		req.Photos = append(req.Photos, request_models.PhotoInput{
			ID:          p.ID,
			MissionType: string(p.MissionType),
			MissionName: p.MissionName,
			Lat:         request_models.Float(p.Lat),
			Lng:         request_models.Float(p.Lng),
			ImageURL:    p.ImageURL,
			Timestamp:   request_models.FlexTime{Time: p.Timestamp},
		})
	}
	for _, r := range session.Route {
		req.Routes = append(req.Routes, request_models.RouteInput{
			Lat:       request_models.Float(r.Lat),
			Lng:       request_models.Float(r.Lng),
			Timestamp: request_models.FlexTime{Time: r.Timestamp},
		})
	}
	return req
}
