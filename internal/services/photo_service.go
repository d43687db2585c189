package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"
	dbm "photowalk/internal/models/db_models"
	"photowalk/internal/models/response_models"
	"photowalk/internal/repositories"
	"photowalk/pkg/metrics"
	"photowalk/pkg/utils"
)

// IncomingFile is one uploaded file before validation. Size comes from the
// multipart header so oversize files are rejected without being read.
type IncomingFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func FileFromHeader(h *multipart.FileHeader) *IncomingFile {
	if h == nil {
		return nil
	}
	return &IncomingFile{
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Size:        h.Size,
		Open: func() (io.ReadCloser, error) {
			return h.Open()
		},
	}
}

// UploadMeta tags an upload for the side table.
type UploadMeta struct {
	PhotoID     string
	WalkID      string
	MissionName string
}

type PhotoServiceInterface interface {
	Upload(ctx context.Context, file *IncomingFile, meta UploadMeta) (*response_models.UploadResponse, error)
	UploadBatch(ctx context.Context, files []*IncomingFile, photoIds []string, walkId string) (*response_models.BatchUploadResponse, error)
	ListUploadedImages(ctx context.Context, walkId string) ([]response_models.UploadedImageResponse, error)
	ClearUploadedImages(ctx context.Context, walkId string) (int64, error)
}

type PhotoService struct {
	store      ImageStore
	photoRepo  repositories.PhotoRepository
	uploadRepo repositories.UploadedImageRepository
	maxBytes   int64
	pause      time.Duration
	metrics    *metrics.WalkMetrics
	log        *zap.Logger
}

func NewPhotoService(
	store ImageStore,
	photoRepo repositories.PhotoRepository,
	uploadRepo repositories.UploadedImageRepository,
	maxBytes int64,
	pause time.Duration,
	m *metrics.WalkMetrics,
	log *zap.Logger,
) PhotoServiceInterface {
	return &PhotoService{
		store:      store,
		photoRepo:  photoRepo,
		uploadRepo: uploadRepo,
		maxBytes:   maxBytes,
		pause:      pause,
		metrics:    m,
		log:        log,
	}
}

func (s *PhotoService) validate(file *IncomingFile) error {
	if file == nil || file.Open == nil {
		return utils.ErrMissingFile
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return utils.ErrNotAnImage
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return &utils.SizeLimitError{Limit: s.maxBytes}
	}
	return nil
}

func (s *PhotoService) read(file *IncomingFile) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	limit := s.maxBytes
	if limit <= 0 {
		limit = 1 << 62
	}
	n, err := io.Copy(&buf, io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}
	// the declared size can lie
	if n > limit {
		return nil, &utils.SizeLimitError{Limit: s.maxBytes}
	}
	return buf.Bytes(), nil
}

// Upload validates, stores and links one photo. Validation failures never
// reach the store.
func (s *PhotoService) Upload(ctx context.Context, file *IncomingFile, meta UploadMeta) (*response_models.UploadResponse, error) {
	if err := s.validate(file); err != nil {
		s.metrics.RecordUpload(s.store.Name(), "rejected")
		return nil, err
	}

	data, err := s.read(file)
	if err != nil {
		s.metrics.RecordUpload(s.store.Name(), "rejected")
		return nil, err
	}

	stored, err := s.store.Store(ctx, ImagePayload{
		PhotoID:     meta.PhotoID,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        data,
	})
	if err != nil {
		s.log.Warn("Image store failed", zap.String("store", s.store.Name()), zap.Error(err))
		s.metrics.RecordUpload(s.store.Name(), "error")
		return nil, err
	}

	s.link(ctx, stored, meta)
	s.metrics.RecordUpload(s.store.Name(), "success")

	return &response_models.UploadResponse{
		Success:  true,
		ImageURL: stored.URL,
		PublicID: stored.PublicID,
		Message:  "写真をアップロードしました",
	}, nil
}

// link attaches the URL to the photo row and records the upload in the
// side table. The row may not exist yet, so failures are only logged.
func (s *PhotoService) link(ctx context.Context, stored StoredImage, meta UploadMeta) {
	if meta.PhotoID == "" {
		return
	}

	if err := s.photoRepo.AttachImageURL(ctx, meta.PhotoID, stored.URL); err != nil {
		s.log.Info("Photo record not linked yet", zap.String("photo_id", meta.PhotoID), zap.Error(err))
	}

	record := &dbm.UploadedImage{
		PhotoID:     meta.PhotoID,
		ImageURL:    stored.URL,
		PublicID:    stored.PublicID,
		MissionName: meta.MissionName,
		Store:       s.store.Name(),
	}
	if meta.WalkID != "" {
		walkID := meta.WalkID
		record.WalkID = &walkID
	}
	if err := s.uploadRepo.SaveUploadedImage(ctx, record); err != nil {
		s.log.Warn("Failed to record uploaded image", zap.String("photo_id", meta.PhotoID), zap.Error(err))
	}
}

// UploadBatch handles files one at a time with a pause between them so the
// external store is not hit in a burst. Individual failures are reported
// per file and do not stop the batch.
func (s *PhotoService) UploadBatch(ctx context.Context, files []*IncomingFile, photoIds []string, walkId string) (*response_models.BatchUploadResponse, error) {
	if len(files) == 0 {
		return nil, utils.ErrMissingFile
	}

	results := make([]response_models.BatchUploadItem, 0, len(files))
	succeeded := 0

	for i, file := range files {
		if i > 0 && s.pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.pause):
			}
		}

		var photoId string
		if i < len(photoIds) {
			photoId = photoIds[i]
		}

		item := response_models.BatchUploadItem{PhotoID: photoId}
		res, err := s.Upload(ctx, file, UploadMeta{PhotoID: photoId, WalkID: walkId})
		if err != nil {
			item.Error = utils.UploadMessage(err)
		} else {
			item.Success = true
			item.ImageURL = res.ImageURL
			item.PublicID = res.PublicID
			succeeded++
		}
		results = append(results, item)
	}

	return &response_models.BatchUploadResponse{
		Success:   true,
		Results:   results,
		Succeeded: succeeded,
		Message:   fmt.Sprintf("%d枚の写真をアップロードしました", succeeded),
	}, nil
}

func (s *PhotoService) ListUploadedImages(ctx context.Context, walkId string) ([]response_models.UploadedImageResponse, error) {
	images, err := s.uploadRepo.ListUploadedImages(ctx, walkId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.UploadedImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, response_models.UploadedImageResponse{
			PhotoID:     img.PhotoID,
			ImageURL:    img.ImageURL,
			PublicID:    img.PublicID,
			MissionName: img.MissionName,
			WalkID:      img.WalkID,
			Timestamp:   time.UnixMilli(img.CreatedAt).UTC(),
		})
	}
	return out, nil
}

func (s *PhotoService) ClearUploadedImages(ctx context.Context, walkId string) (int64, error) {
	n, err := s.uploadRepo.ClearUploadedImages(ctx, walkId)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return n, nil
}
