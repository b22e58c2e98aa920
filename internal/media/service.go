package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/brightlaunch/academy-cms-backend/pkg/config"
	"github.com/brightlaunch/academy-cms-backend/pkg/db"
	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	pkgerrors "github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var allowedContentTypes = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/webp":    "webp",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

type mediaRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) (*models.MediaAsset, error)
	FindByPublicID(ctx context.Context, publicID string) (*models.MediaAsset, error)
	DeleteByPublicID(ctx context.Context, publicID string) error
}

type objectStore interface {
	UploadObject(ctx context.Context, object, contentType string, data []byte) error
	DeleteObject(ctx context.Context, bucket, object string) error
	PublicURL(object string) string
}

// Service exposes the media store: binary upload, deletion, and URL
// resolution for content records that reference images.
type Service interface {
	Upload(ctx context.Context, operatorID uuid.UUID, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, publicID string) error
	ResolveURL(publicID string) string
}

type service struct {
	repo          mediaRepository
	store         objectStore
	defaultFolder string
	maxBytes      int64
	logg          *logger.Logger
}

// NewService constructs a media service backed by the provided repository and
// object store.
func NewService(repo mediaRepository, store objectStore, cfg config.MediaConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 25
	}
	folder := strings.Trim(cfg.DefaultFolder, "/")
	if folder == "" {
		folder = "site-assets"
	}
	return &service{
		repo:          repo,
		store:         store,
		defaultFolder: folder,
		maxBytes:      int64(maxMB) * 1024 * 1024,
		logg:          logg,
	}, nil
}

// UploadInput models an incoming binary upload.
type UploadInput struct {
	FileName    string
	Folder      string
	ContentType string
	Data        []byte
}

// UploadOutput contains the stored asset's public coordinates.
type UploadOutput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes"`
}

func (s *service) Upload(ctx context.Context, operatorID uuid.UUID, input UploadInput) (*UploadOutput, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "operator identity missing")
	}
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	if len(input.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file data is required")
	}
	if int64(len(input.Data)) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds upload size limit").
			WithDetails(map[string]any{"max_bytes": s.maxBytes})
	}

	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	format, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported content type").
			WithDetails(map[string]any{"content_type": input.ContentType})
	}

	folder := strings.Trim(input.Folder, "/")
	if folder == "" {
		folder = s.defaultFolder
	}
	publicID := fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), format)

	if err := s.store.UploadObject(ctx, publicID, contentType, input.Data); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "uploading object")
	}

	asset := &models.MediaAsset{
		ID:         uuid.New(),
		PublicID:   publicID,
		URL:        s.store.PublicURL(publicID),
		Folder:     folder,
		FileName:   path.Base(fileName),
		Format:     format,
		SizeBytes:  int64(len(input.Data)),
		UploadedBy: operatorID,
	}
	if _, err := s.repo.Create(ctx, asset); err != nil {
		// Best effort cleanup so the bucket does not accumulate orphans.
		if delErr := s.store.DeleteObject(ctx, "", publicID); delErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "public_id", publicID), "orphaned object cleanup failed")
		}
		if db.IsUniqueViolation(err, "uq_media_assets_public_id") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "storage key already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting media metadata")
	}

	s.logg.Info(s.logg.WithField(ctx, "public_id", publicID), "media asset uploaded")

	return &UploadOutput{
		URL:      asset.URL,
		PublicID: asset.PublicID,
		Format:   asset.Format,
		Bytes:    asset.SizeBytes,
	}, nil
}

func (s *service) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "public id is required")
	}

	if _, err := s.repo.FindByPublicID(ctx, publicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "media asset not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading media metadata")
	}

	if err := s.store.DeleteObject(ctx, "", publicID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting object")
	}
	if err := s.repo.DeleteByPublicID(ctx, publicID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting media metadata")
	}

	s.logg.Info(s.logg.WithField(ctx, "public_id", publicID), "media asset deleted")
	return nil
}

func (s *service) ResolveURL(publicID string) string {
	return s.store.PublicURL(strings.TrimSpace(publicID))
}
