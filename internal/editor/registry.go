package editor

import (
	"fmt"
	"sort"

	"github.com/brightlaunch/academy-cms-backend/internal/content"
	"github.com/brightlaunch/academy-cms-backend/internal/records"
	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	"github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"gorm.io/gorm"
)

// Registry holds every editable collection, keyed by content type name. The
// HTTP layer resolves the {contentType} path segment against it.
type Registry struct {
	collections map[string]Collection
}

// NewRegistry builds the registry with one bound collection per content type.
func NewRegistry(db *gorm.DB, logg *logger.Logger) (*Registry, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	r := &Registry{collections: make(map[string]Collection)}
	if err := register[models.HeroBanner](r, db, logg, heroBannerSchema()); err != nil {
		return nil, err
	}
	if err := register[models.ContentSection](r, db, logg, contentSectionSchema()); err != nil {
		return nil, err
	}
	if err := register[models.TeamMember](r, db, logg, teamMemberSchema()); err != nil {
		return nil, err
	}
	if err := register[models.Testimonial](r, db, logg, testimonialSchema()); err != nil {
		return nil, err
	}
	if err := register[models.CurriculumWeek](r, db, logg, curriculumWeekSchema()); err != nil {
		return nil, err
	}
	if err := register[models.CallToAction](r, db, logg, callToActionSchema()); err != nil {
		return nil, err
	}
	if err := register[models.FAQ](r, db, logg, faqSchema()); err != nil {
		return nil, err
	}
	return r, nil
}

func register[T any, PT interface {
	records.Record
	*T
}](r *Registry, db *gorm.DB, logg *logger.Logger, schema Schema) error {
	repo := records.NewRepository[T, PT](db)
	svc, err := content.NewService[T, PT](schema.TypeName, repo, logg)
	if err != nil {
		return fmt.Errorf("binding %s collection: %w", schema.TypeName, err)
	}
	return r.Add(Bind(schema, svc))
}

// Add registers a collection. Duplicate type names are a wiring bug.
func (r *Registry) Add(c Collection) error {
	name := c.TypeName()
	if name == "" {
		return fmt.Errorf("collection type name required")
	}
	if _, exists := r.collections[name]; exists {
		return fmt.Errorf("collection %s already registered", name)
	}
	r.collections[name] = c
	return nil
}

// Get resolves a content type name to its collection.
func (r *Registry) Get(typeName string) (Collection, error) {
	c, ok := r.collections[typeName]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("unknown content type %q", typeName)).
			WithDetails(map[string]any{"known_types": r.Types()})
	}
	return c, nil
}

// Types returns the registered content type names sorted for stable output.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schemas returns every registered schema, sorted by type name.
func (r *Registry) Schemas() []Schema {
	schemas := make([]Schema, 0, len(r.collections))
	for _, name := range r.Types() {
		schemas = append(schemas, r.collections[name].Schema())
	}
	return schemas
}

func heroBannerSchema() Schema {
	return Schema{
		TypeName: "hero_banners",
		Fields: []Field{
			{Key: "title", Label: "Title", Kind: KindText, Required: true},
			{Key: "subtitle", Label: "Subtitle", Kind: KindText},
			{Key: "tagline", Label: "Tagline", Kind: KindText},
			{Key: "image_url", Label: "Background image", Kind: KindImage},
			{Key: "cta_label", Label: "Button label", Kind: KindText},
			{Key: "cta_href", Label: "Button link", Kind: KindURL},
		},
	}
}

func contentSectionSchema() Schema {
	return Schema{
		TypeName: "content_sections",
		Fields: []Field{
			{Key: "slug", Label: "Slug", Kind: KindText, Required: true},
			{Key: "heading", Label: "Heading", Kind: KindText, Required: true},
			{Key: "body", Label: "Body", Kind: KindTextarea},
			{Key: "bullets", Label: "Bullet points", Kind: KindList},
			{Key: "image_url", Label: "Image", Kind: KindImage},
		},
	}
}

func teamMemberSchema() Schema {
	return Schema{
		TypeName: "team_members",
		Fields: []Field{
			{Key: "name", Label: "Name", Kind: KindText, Required: true},
			{Key: "titles", Label: "Titles", Kind: KindList},
			{Key: "bio", Label: "Bio", Kind: KindTextarea},
			{Key: "photo_url", Label: "Photo", Kind: KindImage},
			{Key: "linkedin_url", Label: "LinkedIn", Kind: KindURL},
		},
	}
}

func testimonialSchema() Schema {
	return Schema{
		TypeName: "testimonials",
		Fields: []Field{
			{Key: "author", Label: "Author", Kind: KindText, Required: true},
			{Key: "role", Label: "Role", Kind: KindText},
			{Key: "quote", Label: "Quote", Kind: KindTextarea, Required: true},
			{Key: "avatar_url", Label: "Avatar", Kind: KindImage},
			{Key: "rating", Label: "Rating", Kind: KindNumber},
		},
	}
}

func curriculumWeekSchema() Schema {
	return Schema{
		TypeName: "curriculum_weeks",
		Fields: []Field{
			{Key: "week_number", Label: "Week number", Kind: KindNumber, Required: true},
			{Key: "title", Label: "Title", Kind: KindText, Required: true},
			{Key: "summary", Label: "Summary", Kind: KindTextarea},
			{Key: "topics", Label: "Topics", Kind: KindList},
		},
	}
}

func callToActionSchema() Schema {
	return Schema{
		TypeName: "call_to_actions",
		Fields: []Field{
			{Key: "label", Label: "Label", Kind: KindText, Required: true},
			{Key: "href", Label: "Link", Kind: KindURL, Required: true},
			{Key: "style", Label: "Style", Kind: KindText},
			{Key: "blurb", Label: "Blurb", Kind: KindTextarea},
		},
	}
}

func faqSchema() Schema {
	return Schema{
		TypeName: "faqs",
		Fields: []Field{
			{Key: "question", Label: "Question", Kind: KindText, Required: true},
			{Key: "answer", Label: "Answer", Kind: KindTextarea, Required: true},
		},
	}
}
