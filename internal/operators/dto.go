package operators

import (
	"time"

	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	"github.com/google/uuid"
)

// OperatorDTO is the transport shape that omits the credential hash.
type OperatorDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromModel(o *models.Operator) *OperatorDTO {
	if o == nil {
		return nil
	}

	return &OperatorDTO{
		ID:          o.ID,
		Email:       o.Email,
		DisplayName: o.DisplayName,
		IsActive:    o.IsActive,
		LastLoginAt: o.LastLoginAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
