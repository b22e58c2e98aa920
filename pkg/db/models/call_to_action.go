package models

// CallToAction is a promoted button/banner placed throughout the site.
type CallToAction struct {
	ContentFields

	Label string  `gorm:"column:label;not null" json:"label" validate:"required"`
	Href  string  `gorm:"column:href;not null" json:"href" validate:"required"`
	Style *string `gorm:"column:style" json:"style,omitempty"`
	Blurb *string `gorm:"column:blurb" json:"blurb,omitempty"`
}

func (CallToAction) TableName() string { return "call_to_actions" }
