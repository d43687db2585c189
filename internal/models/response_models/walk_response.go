package response_models

import (
	"encoding/json"
	"time"

	"photowalk/internal/walk"
)

type MissionDebug struct {
	Reason      string `json:"reason"`
	UsedDefault bool   `json:"usedDefault"`
	Error       string `json:"error,omitempty"`
}

type GenerateMissionsResponse struct {
	Missions []walk.Mission `json:"missions"`
	Debug    MissionDebug   `json:"debug"`
}

type RouteDetail struct {
	StartCoords walk.Coordinates `json:"startCoords"`
	EndCoords   walk.Coordinates `json:"endCoords"`
	Geometry    json.RawMessage  `json:"geometry"`
	Distance    int              `json:"distance"` // meters
	Duration    int              `json:"duration"` // minutes
	Steps       json.RawMessage  `json:"steps"`
}

type RouteResponse struct {
	Success bool        `json:"success"`
	Route   RouteDetail `json:"route"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	PublicID string `json:"publicId,omitempty"`
	Message  string `json:"message"`
}

type BatchUploadItem struct {
	PhotoID  string `json:"photoId"`
	ImageURL string `json:"imageUrl,omitempty"`
	PublicID string `json:"publicId,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

type BatchUploadResponse struct {
	Success   bool              `json:"success"`
	Results   []BatchUploadItem `json:"results"`
	Succeeded int               `json:"succeeded"`
	Message   string            `json:"message"`
}

type PhotoResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId,omitempty"`
	WalkID      string    `json:"walkId"`
	MissionType string    `json:"missionType"`
	MissionName string    `json:"missionName,omitempty"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type RoutePointResponse struct {
	ID        string    `json:"id"`
	WalkID    string    `json:"walkId"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

type WalkResponse struct {
	ID        string               `json:"id"`
	StartLat  float64              `json:"startLat"`
	StartLng  float64              `json:"startLng"`
	EndLat    float64              `json:"endLat"`
	EndLng    float64              `json:"endLng"`
	Missions  []walk.Mission       `json:"missions"`
	StartTime time.Time            `json:"startTime"`
	EndTime   *time.Time           `json:"endTime,omitempty"`
	Distance  *float64             `json:"distance,omitempty"`
	Steps     *int                 `json:"steps,omitempty"`
	Photos    []PhotoResponse      `json:"photos"`
	Routes    []RoutePointResponse `json:"routes"`
	CreatedAt int64                `json:"createdAt,omitempty"`
}

// SaveWalkResponse covers both the persisted walk and the locally
// acknowledged one returned when storage is unavailable.
type SaveWalkResponse struct {
	Success bool          `json:"success,omitempty"`
	Message string        `json:"message,omitempty"`
	Walk    *WalkResponse `json:"walk"`
}

type ListWalksResponse struct {
	Walks   []WalkResponse `json:"walks"`
	Message string         `json:"message,omitempty"`
}

type UploadedImageResponse struct {
	PhotoID     string    `json:"photoId"`
	ImageURL    string    `json:"imageUrl"`
	PublicID    string    `json:"publicId,omitempty"`
	MissionName string    `json:"missionName,omitempty"`
	WalkID      *string   `json:"walkId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type SessionResponse struct {
	Session *walk.Session `json:"session"`
}

type CaptureResponse struct {
	Photo   walk.PhotoRecord `json:"photo"`
	Mission *walk.Mission    `json:"mission,omitempty"`
	Message string           `json:"message"`
}

type CompleteSessionResponse struct {
	Summary walk.Summary      `json:"summary"`
	Saved   *SaveWalkResponse `json:"saved"`
}
