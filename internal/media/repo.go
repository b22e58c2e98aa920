package media

import (
	"context"

	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes media asset metadata persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a media repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a media asset record.
func (r *Repository) Create(ctx context.Context, asset *models.MediaAsset) (*models.MediaAsset, error) {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// FindByPublicID retrieves a media asset by its storage key.
func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteByPublicID removes the metadata row for a storage key.
func (r *Repository) DeleteByPublicID(ctx context.Context, publicID string) error {
	return r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&models.MediaAsset{}).Error
}
