package models

// HeroBanner is the rotating headline block at the top of the landing page.
type HeroBanner struct {
	ContentFields

	Title    string  `gorm:"column:title;not null" json:"title" validate:"required"`
	Subtitle *string `gorm:"column:subtitle" json:"subtitle,omitempty"`
	Tagline  *string `gorm:"column:tagline" json:"tagline,omitempty"`
	ImageURL *string `gorm:"column:image_url" json:"image_url,omitempty"`
	CTALabel *string `gorm:"column:cta_label" json:"cta_label,omitempty"`
	CTAHref  *string `gorm:"column:cta_href" json:"cta_href,omitempty"`
}

func (HeroBanner) TableName() string { return "hero_banners" }
