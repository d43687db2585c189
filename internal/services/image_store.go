package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"photowalk/internal/config"
	"photowalk/pkg/utils"
)

const (
	ImageFolder = "photo-walk-map"
	// bound to 1200x1200, automatic quality and format
	imageTransformation = "c_limit,h_1200,w_1200/q_auto/f_auto"
)

// ImagePayload is a validated image ready to be stored.
type ImagePayload struct {
	PhotoID     string
	Filename    string
	ContentType string
	Data        []byte
}

type StoredImage struct {
	URL      string
	PublicID string
}

type ImageStore interface {
	Name() string
	Store(ctx context.Context, img ImagePayload) (StoredImage, error)
}

// NewImageStore picks the store named by IMAGE_STORE. A store whose
// credentials are missing still gets built and fails every call with
// ErrImageStoreNotConfigured.
func NewImageStore(ctx context.Context, cfg config.Config, log *zap.Logger) ImageStore {
	switch cfg.ImageStore {
	case "local":
		return NewLocalImageStore(cfg.UploadDir, cfg.UploadPublicPath)
	case "s3", "r2":
		if !cfg.HasS3() {
			log.Warn("S3 image store selected but credentials are missing")
			return unconfiguredStore{name: "s3"}
		}
		store, err := NewS3ImageStore(ctx, cfg)
		if err != nil {
			log.Warn("Failed to load S3 config", zap.Error(err))
			return unconfiguredStore{name: "s3"}
		}
		return store
	default:
		if !cfg.HasCloudinary() {
			log.Warn("Cloudinary image store selected but credentials are missing")
			return unconfiguredStore{name: "cloudinary"}
		}
		store, err := NewCloudinaryImageStore(cfg)
		if err != nil {
			log.Warn("Failed to create Cloudinary client", zap.Error(err))
			return unconfiguredStore{name: "cloudinary"}
		}
		return store
	}
}

type unconfiguredStore struct {
	name string
}

func (u unconfiguredStore) Name() string { return u.name }

func (u unconfiguredStore) Store(context.Context, ImagePayload) (StoredImage, error) {
	return StoredImage{}, utils.ErrImageStoreNotConfigured
}

// ---------------- Cloudinary ----------------

type CloudinaryImageStore struct {
	cld *cloudinary.Cloudinary
	now func() time.Time
}

func NewCloudinaryImageStore(cfg config.Config) (*CloudinaryImageStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryImageStore{cld: cld, now: time.Now}, nil
}

func (c *CloudinaryImageStore) Name() string { return "cloudinary" }

func (c *CloudinaryImageStore) Store(ctx context.Context, img ImagePayload) (StoredImage, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", img.ContentType, base64.StdEncoding.EncodeToString(img.Data))

	res, err := c.cld.Upload.Upload(ctx, dataURI, cloudinaryUploadParams(img.PhotoID, c.now()))
	if err != nil {
		return StoredImage{}, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}
	if res.Error.Message != "" {
		return StoredImage{}, fmt.Errorf("%w: %s", utils.ErrUploadFailed, res.Error.Message)
	}
	return StoredImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func cloudinaryUploadParams(photoID string, now time.Time) uploader.UploadParams {
	return uploader.UploadParams{
		Folder:         ImageFolder,
		PublicID:       fmt.Sprintf("%d_%s", now.UnixMilli(), photoID),
		Transformation: imageTransformation,
	}
}

// ---------------- S3 / R2 ----------------

// ObjectPutter is the slice of the S3 client the store needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3ImageStore struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

func NewS3ImageStore(ctx context.Context, cfg config.Config) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.S3PublicBaseURL
	if base == "" && cfg.S3Endpoint != "" {
		base = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return NewS3ImageStoreWithClient(client, cfg.S3Bucket, base), nil
}

func NewS3ImageStoreWithClient(client ObjectPutter, bucket, publicBaseURL string) *S3ImageStore {
	return &S3ImageStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

func (s *S3ImageStore) Name() string { return "s3" }

func (s *S3ImageStore) Store(ctx context.Context, img ImagePayload) (StoredImage, error) {
	ext, contentType := imageKind(img)
	key := path.Join(ImageFolder, fmt.Sprintf("%d_%s%s", s.now().UnixMilli(), safeName(img.PhotoID), ext))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return StoredImage{}, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}
	return StoredImage{URL: s.publicBaseURL + "/" + key, PublicID: key}, nil
}

// ---------------- local directory ----------------

type LocalImageStore struct {
	dir        string
	publicPath string
	now        func() time.Time
}

func NewLocalImageStore(dir, publicPath string) *LocalImageStore {
	return &LocalImageStore{
		dir:        dir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		now:        time.Now,
	}
}

func (l *LocalImageStore) Name() string { return "local" }

func (l *LocalImageStore) Store(_ context.Context, img ImagePayload) (StoredImage, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return StoredImage{}, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}

	ext, _ := imageKind(img)
	name := fmt.Sprintf("%d_%s%s", l.now().UnixMilli(), uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(l.dir, name), img.Data, 0o644); err != nil {
		return StoredImage{}, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
	}
	return StoredImage{URL: path.Join(l.publicPath, name), PublicID: name}, nil
}

// imageKind derives the extension and served content type from the
// validated content type only. Stored files are served by extension, so
// the client filename never decides it. Unknown image types are stored as
// JPEG.
func imageKind(img ImagePayload) (ext, contentType string) {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(img.ContentType, ";")[0]))
	if ext, ok := imageExtensions[ct]; ok {
		return ext, ct
	}
	return ".jpg", "image/jpeg"
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

func safeName(s string) string {
	if s == "" {
		return uuid.NewString()
	}
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, s)
}
