package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentFields carries the system columns shared by every ordered content
// collection. Embedding types get identity, display order, visibility, and
// the service-stamped timestamps.
type ContentFields struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"order"`
	IsVisible  bool      `gorm:"column:is_visible;not null;default:true" json:"is_visible"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// RecordID returns the record identity.
func (c *ContentFields) RecordID() uuid.UUID { return c.ID }

// SetRecordID assigns the record identity. Only the service layer calls this.
func (c *ContentFields) SetRecordID(id uuid.UUID) { c.ID = id }

// Order returns the display rank within the record's collection.
func (c *ContentFields) Order() int { return c.OrderIndex }

// SetOrder assigns the display rank.
func (c *ContentFields) SetOrder(order int) { c.OrderIndex = order }

// Visible reports whether public pages should render the record.
func (c *ContentFields) Visible() bool { return c.IsVisible }

// StampCreated sets both timestamps on first persist.
func (c *ContentFields) StampCreated(now time.Time) {
	c.CreatedAt = now
	c.UpdatedAt = now
}

// StampUpdated refreshes the mutation timestamp.
func (c *ContentFields) StampUpdated(now time.Time) {
	c.UpdatedAt = now
}
