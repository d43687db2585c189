package walk

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"photowalk/pkg/geo"
)

var (
	ErrNoLocation       = errors.New("location not available")
	ErrMissionNotFound  = errors.New("mission not found in session")
	ErrMissionCompleted = errors.New("mission already completed")
)

type MissionType string

const (
	MissionTypeMission  MissionType = "mission"
	MissionTypeFavorite MissionType = "favorite"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinates is a [lng, lat] pair, the order map providers use.
type Coordinates [2]float64

func (c Coordinates) Lng() float64 { return c[0] }
func (c Coordinates) Lat() float64 { return c[1] }

type PhotoRecord struct {
	ID          string      `json:"id"`
	MissionID   string      `json:"missionId,omitempty"`
	MissionName string      `json:"missionName,omitempty"`
	MissionType MissionType `json:"missionType"`
	Lat         float64     `json:"lat"`
	Lng         float64     `json:"lng"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

type RoutePoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Session accumulates everything that happens during one active walk.
type Session struct {
	ID            string        `json:"id"`
	Missions      []Mission     `json:"missions"`
	Photos        []PhotoRecord `json:"photos"`
	Route         []RoutePoint  `json:"route"`
	StartLocation *Location     `json:"startLocation,omitempty"`
	EndLocation   *Location     `json:"endLocation,omitempty"`
	StartedAt     time.Time     `json:"startedAt"`

	now func() time.Time
}

type Summary struct {
	Missions          []Mission     `json:"missions"`
	Photos            []PhotoRecord `json:"photos"`
	TotalPhotos       int           `json:"totalPhotos"`
	CompletedMissions int           `json:"completedMissions"`
	RoutePoints       int           `json:"routePoints"`
	DistanceMeters    float64       `json:"distanceMeters"`
	StartTime         time.Time     `json:"startTime"`
	EndTime           time.Time     `json:"endTime"`
}

// NewSession starts a walk with the given mission batch.
func NewSession(missions []Mission) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Missions: missions,
		Photos:   []PhotoRecord{},
		Route:    []RoutePoint{},
		now:      time.Now,
	}
	s.StartedAt = s.now()
	return s
}

// WithClock replaces the time source, mainly for tests.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	s.StartedAt = now()
	return s
}

func (s *Session) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Session) mission(id string) (*Mission, error) {
	for i := range s.Missions {
		if s.Missions[i].ID == id {
			return &s.Missions[i], nil
		}
	}
	return nil, ErrMissionNotFound
}

// RecordCapture registers a photo for an open mission at loc.
func (s *Session) RecordCapture(missionID string, loc *Location) (PhotoRecord, error) {
	if loc == nil {
		return PhotoRecord{}, ErrNoLocation
	}
	m, err := s.mission(missionID)
	if err != nil {
		return PhotoRecord{}, err
	}
	if m.Completed {
		return PhotoRecord{}, ErrMissionCompleted
	}

	photo := PhotoRecord{
		ID:          uuid.NewString(),
		MissionID:   m.ID,
		MissionName: m.Name,
		MissionType: MissionTypeMission,
		Lat:         loc.Lat,
		Lng:         loc.Lng,
		Timestamp:   s.clock(),
	}
	s.Photos = append(s.Photos, photo)
	m.capture()
	return photo, nil
}

// RecordFavorite registers a free photo that counts toward no mission.
func (s *Session) RecordFavorite(loc *Location) (PhotoRecord, error) {
	if loc == nil {
		return PhotoRecord{}, ErrNoLocation
	}
	photo := PhotoRecord{
		ID:          uuid.NewString(),
		MissionType: MissionTypeFavorite,
		Lat:         loc.Lat,
		Lng:         loc.Lng,
		Timestamp:   s.clock(),
	}
	s.Photos = append(s.Photos, photo)
	return photo, nil
}

// RecordRoutePoint appends a breadcrumb. Every sample is kept.
func (s *Session) RecordRoutePoint(loc Location, at time.Time) RoutePoint {
	if at.IsZero() {
		at = s.clock()
	}
	p := RoutePoint{Lat: loc.Lat, Lng: loc.Lng, Timestamp: at}
	s.Route = append(s.Route, p)
	return p
}

// CompletedMissions counts missions whose target has been reached.
func (s *Session) CompletedMissions() int {
	n := 0
	for _, m := range s.Missions {
		if m.Completed {
			n++
		}
	}
	return n
}

// DistanceMeters sums the walked route.
func (s *Session) DistanceMeters() float64 {
	total := 0.0
	for i := 1; i < len(s.Route); i++ {
		a, b := s.Route[i-1], s.Route[i]
		total += geo.HaversineMeters(a.Lat, a.Lng, b.Lat, b.Lng)
	}
	return total
}

// Summarize derives the walk summary without touching the session.
func (s *Session) Summarize() Summary {
	missions := make([]Mission, len(s.Missions))
	copy(missions, s.Missions)
	photos := make([]PhotoRecord, len(s.Photos))
	copy(photos, s.Photos)

	return Summary{
		Missions:          missions,
		Photos:            photos,
		TotalPhotos:       len(photos),
		CompletedMissions: s.CompletedMissions(),
		RoutePoints:       len(s.Route),
		DistanceMeters:    s.DistanceMeters(),
		StartTime:         s.StartedAt,
		EndTime:           s.clock(),
	}
}

// Clone returns a copy that shares no slices with s.
func (s *Session) Clone() *Session {
	c := *s
	c.Missions = append([]Mission(nil), s.Missions...)
	c.Photos = append([]PhotoRecord{}, s.Photos...)
	c.Route = append([]RoutePoint{}, s.Route...)
	if s.StartLocation != nil {
		loc := *s.StartLocation
		c.StartLocation = &loc
	}
	if s.EndLocation != nil {
		loc := *s.EndLocation
		c.EndLocation = &loc
	}
	return &c
}
