package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaAsset captures metadata for objects pushed to the media host. Content
// records reference assets only by the public id / url strings stored here.
type MediaAsset struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PublicID   string    `gorm:"column:public_id;not null;uniqueIndex"`
	URL        string    `gorm:"column:url;not null"`
	Folder     string    `gorm:"column:folder;not null"`
	FileName   string    `gorm:"column:file_name;not null"`
	Format     string    `gorm:"column:format;not null"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null"`
	UploadedBy uuid.UUID `gorm:"column:uploaded_by;type:uuid;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
