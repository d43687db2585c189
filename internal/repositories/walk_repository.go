package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	dbm "photowalk/internal/models/db_models"
)

// ErrNoDatabase is returned by every repository when the process started
// without a reachable database.
var ErrNoDatabase = errors.New("database not connected")

type WalkRepository interface {
	CreateWalk(ctx context.Context, walk *dbm.Walk) error
	ListWalksNewestFirst(ctx context.Context) ([]dbm.Walk, error)
	GetWalkById(ctx context.Context, walkId string) (*dbm.Walk, error)
}

type walkRepository struct {
	db *gorm.DB
}

func NewWalkRepository(db *gorm.DB) WalkRepository {
	return &walkRepository{db: db}
}

// CreateWalk inserts the walk with its photos and route points in one
// transaction.
func (r *walkRepository) CreateWalk(ctx context.Context, walk *dbm.Walk) error {
	if r.db == nil {
		return ErrNoDatabase
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		photos, routes := walk.Photos, walk.Routes
		walk.Photos, walk.Routes = nil, nil

		if err := tx.Create(walk).Error; err != nil {
			return err
		}

		for i := range photos {
			photos[i].WalkID = walk.ID
		}
		for i := range routes {
			routes[i].WalkID = walk.ID
			routes[i].Seq = i
		}

		if len(photos) > 0 {
			if err := tx.Create(&photos).Error; err != nil {
				return err
			}
		}
		if len(routes) > 0 {
			if err := tx.Create(&routes).Error; err != nil {
				return err
			}
		}

		walk.Photos, walk.Routes = photos, routes
		return nil
	})
}

func (r *walkRepository) ListWalksNewestFirst(ctx context.Context) ([]dbm.Walk, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	var walks []dbm.Walk
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Preload("Routes", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Order("created_at DESC").
		Find(&walks).Error
	if err != nil {
		return nil, err
	}
	return walks, nil
}

func (r *walkRepository) GetWalkById(ctx context.Context, walkId string) (*dbm.Walk, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	var walk dbm.Walk
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Preload("Routes", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Where("id = ?", walkId).
		First(&walk).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &walk, nil
}
