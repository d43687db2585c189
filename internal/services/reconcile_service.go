package services

import (
	"context"

	"go.uber.org/zap"
	"photowalk/internal/repositories"
	"photowalk/pkg/metrics"
)

const reconcileBatchSize = 200

type ReconcileServiceInterface interface {
	// ReconcileOnce copies side-table image URLs onto photos that were saved
	// before their upload finished. Returns how many photos were updated.
	ReconcileOnce(ctx context.Context) (int, error)
}

type ReconcileService struct {
	photoRepo  repositories.PhotoRepository
	uploadRepo repositories.UploadedImageRepository
	metrics    *metrics.WalkMetrics
	log        *zap.Logger
}

func NewReconcileService(
	photoRepo repositories.PhotoRepository,
	uploadRepo repositories.UploadedImageRepository,
	m *metrics.WalkMetrics,
	log *zap.Logger,
) ReconcileServiceInterface {
	return &ReconcileService{
		photoRepo:  photoRepo,
		uploadRepo: uploadRepo,
		metrics:    m,
		log:        log,
	}
}

func (s *ReconcileService) ReconcileOnce(ctx context.Context) (int, error) {
	photos, err := s.photoRepo.ListPhotosWithoutImage(ctx, reconcileBatchSize)
	if err != nil {
		return 0, err
	}
	if len(photos) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(photos)*2)
	for _, p := range photos {
		keys = append(keys, p.ID.String())
		if p.ClientID != "" {
			keys = append(keys, p.ClientID)
		}
	}

	uploads, err := s.uploadRepo.FindLatestByPhotoIds(ctx, keys)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, p := range photos {
		up, ok := uploads[p.ClientID]
		if !ok || p.ClientID == "" {
			up, ok = uploads[p.ID.String()]
		}
		if !ok || up.ImageURL == "" {
			continue
		}

		if err := s.photoRepo.AttachImageURL(ctx, p.ID.String(), up.ImageURL); err != nil {
			s.log.Warn("Failed to backfill photo image",
				zap.String("photo_id", p.ID.String()), zap.Error(err))
			continue
		}
		updated++
	}

	if updated > 0 {
		s.log.Info("Backfilled photo images", zap.Int("count", updated))
	}
	s.metrics.RecordReconciled(updated)
	return updated, nil
}
