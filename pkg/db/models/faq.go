package models

// FAQ is one collapsible question/answer pair.
type FAQ struct {
	ContentFields

	Question string `gorm:"column:question;not null" json:"question" validate:"required"`
	Answer   string `gorm:"column:answer;not null" json:"answer" validate:"required"`
}

func (FAQ) TableName() string { return "faqs" }
