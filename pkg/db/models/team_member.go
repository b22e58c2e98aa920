package models

import "github.com/lib/pq"

// TeamMember is one staff or instructor card on the team page.
type TeamMember struct {
	ContentFields

	Name        string         `gorm:"column:name;not null" json:"name" validate:"required"`
	Titles      pq.StringArray `gorm:"column:titles;type:text[]" json:"titles,omitempty"`
	Bio         *string        `gorm:"column:bio" json:"bio,omitempty"`
	PhotoURL    *string        `gorm:"column:photo_url" json:"photo_url,omitempty"`
	LinkedInURL *string        `gorm:"column:linkedin_url" json:"linkedin_url,omitempty"`
}

func (TeamMember) TableName() string { return "team_members" }
