package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Walk struct {
	BaseModel
	StartLat  float64
	StartLng  float64
	EndLat    float64
	EndLng    float64
	Missions  datatypes.JSON // frozen mission batch, parsed back on read
	StartTime time.Time
	EndTime   time.Time
	Distance  *float64
	Steps     *int

	Photos []Photo     `gorm:"foreignKey:WalkID;constraint:OnDelete:CASCADE"`
	Routes []WalkRoute `gorm:"foreignKey:WalkID;constraint:OnDelete:CASCADE"`
}

type Photo struct {
	BaseModel
	WalkID      uuid.UUID `gorm:"type:uuid;index"`
	ClientID    string    `gorm:"index"` // id assigned on the device at capture time
	MissionType string    `gorm:"default:mission"`
	MissionName string
	Lat         float64
	Lng         float64
	ImageURL    string
	Timestamp   time.Time
}

type WalkRoute struct {
	BaseModel
	WalkID    uuid.UUID `gorm:"type:uuid;index"`
	Seq       int
	Lat       float64
	Lng       float64
	Timestamp time.Time
}
