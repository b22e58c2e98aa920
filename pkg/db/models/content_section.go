package models

import "github.com/lib/pq"

// ContentSection is a free-form page block (mission statement, about copy,
// program pitch). Bullets hold the section's sub-list items.
type ContentSection struct {
	ContentFields

	Slug     string         `gorm:"column:slug;not null" json:"slug" validate:"required"`
	Heading  string         `gorm:"column:heading;not null" json:"heading" validate:"required"`
	Body     *string        `gorm:"column:body" json:"body,omitempty"`
	Bullets  pq.StringArray `gorm:"column:bullets;type:text[]" json:"bullets,omitempty"`
	ImageURL *string        `gorm:"column:image_url" json:"image_url,omitempty"`
}

func (ContentSection) TableName() string { return "content_sections" }
