package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the locally provisioned authorization record tied to an
// operator identity. Created lazily on first successful sign-in, updated on
// deactivation, never deleted.
type Profile struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OperatorID uuid.UUID `gorm:"column:operator_id;type:uuid;not null;uniqueIndex"`
	Role       string    `gorm:"column:role;not null;default:'admin'"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
