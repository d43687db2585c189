package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "photowalk/internal/models/db_models"
)

type PhotoRepository interface {
	// AttachImageURL sets image_url on the photo whose row id or device id
	// equals photoId. Returns gorm.ErrRecordNotFound when nothing matched.
	AttachImageURL(ctx context.Context, photoId string, imageURL string) error
	ListPhotosWithoutImage(ctx context.Context, limit int) ([]dbm.Photo, error)
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) AttachImageURL(ctx context.Context, photoId string, imageURL string) error {
	if r.db == nil {
		return ErrNoDatabase
	}

	q := r.db.WithContext(ctx).Model(&dbm.Photo{})
	if id, err := uuid.Parse(photoId); err == nil {
		q = q.Where("id = ? OR client_id = ?", id, photoId)
	} else {
		q = q.Where("client_id = ?", photoId)
	}

	res := q.Update("image_url", imageURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *photoRepository) ListPhotosWithoutImage(ctx context.Context, limit int) ([]dbm.Photo, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	var photos []dbm.Photo
	err := r.db.WithContext(ctx).
		Where("image_url = ? OR image_url IS NULL", "").
		Order("created_at ASC").
		Limit(limit).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}
