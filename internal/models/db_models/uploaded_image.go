package db_models

// UploadedImage remembers every stored image by the photo id it was
// uploaded for. The photo (and its walk) may not exist yet; history reads
// join on PhotoID.
type UploadedImage struct {
	BaseModel
	PhotoID     string  `gorm:"index"`
	WalkID      *string `gorm:"index"`
	ImageURL    string
	PublicID    string
	MissionName string
	Store       string
}
