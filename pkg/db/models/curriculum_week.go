package models

import "github.com/lib/pq"

// CurriculumWeek is one entry in the program's week-by-week outline.
type CurriculumWeek struct {
	ContentFields

	WeekNumber int            `gorm:"column:week_number;not null" json:"week_number" validate:"required,min=1"`
	Title      string         `gorm:"column:title;not null" json:"title" validate:"required"`
	Summary    *string        `gorm:"column:summary" json:"summary,omitempty"`
	Topics     pq.StringArray `gorm:"column:topics;type:text[]" json:"topics,omitempty"`
}

func (CurriculumWeek) TableName() string { return "curriculum_weeks" }
