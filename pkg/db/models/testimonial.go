package models

// Testimonial is a quote from a graduate or partner shown on public pages.
type Testimonial struct {
	ContentFields

	Author    string  `gorm:"column:author;not null" json:"author" validate:"required"`
	Role      *string `gorm:"column:role" json:"role,omitempty"`
	Quote     string  `gorm:"column:quote;not null" json:"quote" validate:"required"`
	AvatarURL *string `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Rating    *int    `gorm:"column:rating" json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

func (Testimonial) TableName() string { return "testimonials" }
