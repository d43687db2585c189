package request_models

import "encoding/json"

type GenerateMissionsRequest struct {
	StartLocation string `json:"startLocation"`
	EndLocation   string `json:"endLocation"`
	Season        string `json:"season"`
	TimeOfDay     string `json:"timeOfDay"`
}

type RouteRequest struct {
	StartAddress string `json:"startAddress"`
	EndAddress   string `json:"endAddress"`
}

type PhotoInput struct {
	ID          string    `json:"id"`
	MissionType string    `json:"missionType"`
	MissionName string    `json:"missionName"`
	Lat         FlexFloat `json:"lat"`
	Lng         FlexFloat `json:"lng"`
	ImageURL    string    `json:"imageUrl"`
	Timestamp   FlexTime  `json:"timestamp"`
}

type RouteInput struct {
	Lat       FlexFloat `json:"lat"`
	Lng       FlexFloat `json:"lng"`
	Timestamp FlexTime  `json:"timestamp"`
}

// CreateWalkRequest is the walk-complete payload. Numbers may arrive as
// strings; missions are kept verbatim and stored as a blob.
type CreateWalkRequest struct {
	StartLat  FlexFloat       `json:"startLat"`
	StartLng  FlexFloat       `json:"startLng"`
	EndLat    FlexFloat       `json:"endLat"`
	EndLng    FlexFloat       `json:"endLng"`
	Missions  json.RawMessage `json:"missions"`
	Photos    []PhotoInput    `json:"photos"`
	Routes    []RouteInput    `json:"routes"`
	Distance  *FlexFloat      `json:"distance"`
	Steps     *FlexInt        `json:"steps"`
	StartTime FlexTime        `json:"startTime"`
	EndTime   FlexTime        `json:"endTime"`
}

type MissionDraftInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type StartSessionRequest struct {
	StartLat FlexFloat           `json:"startLat"`
	StartLng FlexFloat           `json:"startLng"`
	EndLat   FlexFloat           `json:"endLat"`
	EndLng   FlexFloat           `json:"endLng"`
	Missions []MissionDraftInput `json:"missions"`
}

type CaptureRequest struct {
	MissionID string     `json:"missionId"`
	Lat       *FlexFloat `json:"lat"`
	Lng       *FlexFloat `json:"lng"`
}

type LocationRequest struct {
	Lat       *FlexFloat `json:"lat"`
	Lng       *FlexFloat `json:"lng"`
	Timestamp FlexTime   `json:"timestamp"`
}
