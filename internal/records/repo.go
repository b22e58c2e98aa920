package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the behavior every ordered content row exposes through its
// embedded system fields.
type Record interface {
	RecordID() uuid.UUID
	SetRecordID(uuid.UUID)
	Order() int
	SetOrder(int)
	Visible() bool
	StampCreated(time.Time)
	StampUpdated(time.Time)
}

// Repository persists one ordered content collection. T is the concrete model
// and PT its pointer type, which must satisfy Record.
type Repository[T any, PT interface {
	Record
	*T
}] struct {
	db *gorm.DB
}

// NewRepository constructs a collection repo bound to the provided GORM DB.
func NewRepository[T any, PT interface {
	Record
	*T
}](db *gorm.DB) *Repository[T, PT] {
	return &Repository[T, PT]{db: db}
}

// GetAll returns every record of the collection sorted by display order.
// Ties fall back to creation time so output stays stable.
func (r *Repository[T, PT]) GetAll(ctx context.Context) ([]PT, error) {
	var items []T
	err := r.db.WithContext(ctx).
		Order("order_index ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	out := make([]PT, len(items))
	for i := range items {
		out[i] = PT(&items[i])
	}
	return out, nil
}

// FindByID loads a single record by its UUID.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id uuid.UUID) (PT, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return PT(&item), nil
}

// Create inserts a new record.
func (r *Repository[T, PT]) Create(ctx context.Context, record PT) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Save writes the full record back to storage.
func (r *Repository[T, PT]) Save(ctx context.Context, record PT) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// UpdateOrder writes only the order column for the identified record.
func (r *Repository[T, PT]) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		UpdateColumn("order_index", order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the record. Remaining records keep their order values; gaps
// are closed by the next reorder.
func (r *Repository[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MaxOrder returns the highest order value currently stored, zero when the
// collection is empty.
func (r *Repository[T, PT]) MaxOrder(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}
