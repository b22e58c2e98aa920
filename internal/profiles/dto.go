package profiles

import (
	"time"

	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	"github.com/google/uuid"
)

const DefaultRole = "admin"

// ProfileDTO is the transport shape for an editor profile.
type ProfileDTO struct {
	ID         uuid.UUID `json:"id"`
	OperatorID uuid.UUID `json:"operator_id"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateProfileDTO holds the data required to provision a profile.
type CreateProfileDTO struct {
	OperatorID uuid.UUID
	Role       string
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}

	return &ProfileDTO{
		ID:         p.ID,
		OperatorID: p.OperatorID,
		Role:       p.Role,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (c CreateProfileDTO) ToModel() *models.Profile {
	role := c.Role
	if role == "" {
		role = DefaultRole
	}

	return &models.Profile{
		OperatorID: c.OperatorID,
		Role:       role,
		IsActive:   true,
	}
}
