package repositories

import (
	"context"

	"gorm.io/gorm"
	dbm "photowalk/internal/models/db_models"
)

type UploadedImageRepository interface {
	SaveUploadedImage(ctx context.Context, image *dbm.UploadedImage) error
	ListUploadedImages(ctx context.Context, walkId string) ([]dbm.UploadedImage, error)
	// FindLatestByPhotoIds returns the newest upload per photo id.
	FindLatestByPhotoIds(ctx context.Context, photoIds []string) (map[string]dbm.UploadedImage, error)
	ClearUploadedImages(ctx context.Context, walkId string) (int64, error)
}

type uploadedImageRepository struct {
	db *gorm.DB
}

func NewUploadedImageRepository(db *gorm.DB) UploadedImageRepository {
	return &uploadedImageRepository{db: db}
}

func (r *uploadedImageRepository) SaveUploadedImage(ctx context.Context, image *dbm.UploadedImage) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	return r.db.WithContext(ctx).Create(image).Error
}

// ListUploadedImages returns every upload, or only those tagged with walkId
// when it is not empty.
func (r *uploadedImageRepository) ListUploadedImages(ctx context.Context, walkId string) ([]dbm.UploadedImage, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	q := r.db.WithContext(ctx).Order("created_at ASC")
	if walkId != "" {
		q = q.Where("walk_id = ?", walkId)
	}

	var images []dbm.UploadedImage
	if err := q.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *uploadedImageRepository) FindLatestByPhotoIds(ctx context.Context, photoIds []string) (map[string]dbm.UploadedImage, error) {
	out := make(map[string]dbm.UploadedImage, len(photoIds))
	if len(photoIds) == 0 {
		return out, nil
	}
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	var images []dbm.UploadedImage
	err := r.db.WithContext(ctx).
		Where("photo_id IN ?", photoIds).
		Order("created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	// ascending order, so later rows overwrite earlier ones
	for _, img := range images {
		out[img.PhotoID] = img
	}
	return out, nil
}

func (r *uploadedImageRepository) ClearUploadedImages(ctx context.Context, walkId string) (int64, error) {
	if r.db == nil {
		return 0, ErrNoDatabase
	}

	q := r.db.WithContext(ctx)
	if walkId != "" {
		q = q.Where("walk_id = ?", walkId)
	} else {
		q = q.Where("1 = 1")
	}

	res := q.Delete(&dbm.UploadedImage{})
	return res.RowsAffected, res.Error
}
