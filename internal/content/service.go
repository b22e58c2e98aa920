package content

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/brightlaunch/academy-cms-backend/internal/records"
	"github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/brightlaunch/academy-cms-backend/pkg/reorder"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Repo is the persistence surface one ordered collection service depends on.
type Repo[PT records.Record] interface {
	GetAll(ctx context.Context) ([]PT, error)
	FindByID(ctx context.Context, id uuid.UUID) (PT, error)
	Create(ctx context.Context, record PT) error
	Save(ctx context.Context, record PT) error
	UpdateOrder(ctx context.Context, id uuid.UUID, order int) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxOrder(ctx context.Context) (int, error)
}

// Service manages one content type's ordered collection: reads, writes,
// and the batch order persistence behind drag reordering.
type Service[T any, PT interface {
	records.Record
	*T
}] struct {
	typeName string
	repo     Repo[PT]
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs a collection service for the named content type.
func NewService[T any, PT interface {
	records.Record
	*T
}](typeName string, repo Repo[PT], logg *logger.Logger) (*Service[T, PT], error) {
	if typeName == "" {
		return nil, fmt.Errorf("type name is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service[T, PT]{
		typeName: typeName,
		repo:     repo,
		logg:     logg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}, nil
}

// TypeName returns the content type this service manages.
func (s *Service[T, PT]) TypeName() string {
	return s.typeName
}

// GetAll returns every record sorted by display order, hidden ones included.
func (s *Service[T, PT]) GetAll(ctx context.Context) ([]PT, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("loading %s collection", s.typeName))
	}
	return all, nil
}

// ListVisible returns only the records public pages should render, sorted by
// display order.
func (s *Service[T, PT]) ListVisible(ctx context.Context) ([]PT, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]PT, 0, len(all))
	for _, rec := range all {
		if rec.Visible() {
			visible = append(visible, rec)
		}
	}
	return visible, nil
}

// Get loads a single record by id.
func (s *Service[T, PT]) Get(ctx context.Context, id uuid.UUID) (PT, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoErr(err, "loading record")
	}
	return rec, nil
}

// Create validates and persists a new record at the end of the collection.
func (s *Service[T, PT]) Create(ctx context.Context, record PT) (PT, error) {
	if record == nil {
		return nil, errors.New(errors.CodeValidation, "record payload is required")
	}
	if err := s.validateRecord(record); err != nil {
		return nil, err
	}

	max, err := s.repo.MaxOrder(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "computing next order value")
	}

	if record.RecordID() == uuid.Nil {
		record.SetRecordID(uuid.New())
	}
	record.SetOrder(max + 1)
	record.StampCreated(s.now())

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("persisting %s record", s.typeName))
	}

	ctx = s.logg.WithContentType(ctx, s.typeName)
	s.logg.Info(s.logg.WithField(ctx, "record_id", record.RecordID().String()), "content record created")
	return record, nil
}

// Update loads the record, applies the caller's mutation, validates, and
// saves. The mutation must not touch identity or order; both are restored
// before persisting.
func (s *Service[T, PT]) Update(ctx context.Context, id uuid.UUID, mutate func(PT) error) (PT, error) {
	if mutate == nil {
		return nil, errors.New(errors.CodeValidation, "mutation is required")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoErr(err, "loading record for update")
	}

	order := record.Order()
	created := record.RecordID()

	if err := mutate(record); err != nil {
		return nil, err
	}

	record.SetRecordID(created)
	record.SetOrder(order)

	if err := s.validateRecord(record); err != nil {
		return nil, err
	}
	record.StampUpdated(s.now())

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("saving %s record", s.typeName))
	}
	return record, nil
}

// Delete removes the record. Remaining order values keep their gaps until the
// next reorder normalizes them.
func (s *Service[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoErr(err, "deleting record")
	}
	ctx = s.logg.WithContentType(ctx, s.typeName)
	s.logg.Info(s.logg.WithField(ctx, "record_id", id.String()), "content record deleted")
	return nil
}

// UpdateOrder persists the assignments as independent per-record writes.
// Each write stands alone: a failure neither stops the batch nor rolls back
// earlier writes, and the aggregate error reports every failed record.
func (s *Service[T, PT]) UpdateOrder(ctx context.Context, assignments []reorder.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	var failed error
	for _, a := range assignments {
		if err := s.repo.UpdateOrder(ctx, a.ID, a.Order); err != nil {
			failed = multierr.Append(failed, fmt.Errorf("record %s: %w", a.ID, err))
		}
	}
	if failed != nil {
		return errors.Wrap(errors.CodeDependency, failed, fmt.Sprintf("persisting %s order batch", s.typeName)).
			WithDetails(map[string]any{"failed_writes": len(multierr.Errors(failed))})
	}
	return nil
}

// Reorder applies a drag gesture over the visible records and persists the
// renumbered sequence. sourceIndex is zero based within the visible sequence;
// targetSlot is the one-based display slot the record lands on. Hidden records
// do not participate and keep their order values. The returned slice is a full
// re-fetch of the collection.
func (s *Service[T, PT]) Reorder(ctx context.Context, sourceIndex, targetSlot int) ([]PT, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seq := make([]uuid.UUID, 0, len(all))
	for _, rec := range all {
		if rec.Visible() {
			seq = append(seq, rec.RecordID())
		}
	}

	assignments, changed, err := reorder.Move(seq, sourceIndex, targetSlot)
	if err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "invalid drag gesture")
	}
	if !changed {
		return all, nil
	}

	if err := s.UpdateOrder(ctx, assignments); err != nil {
		return nil, err
	}

	ctx = s.logg.WithContentType(ctx, s.typeName)
	s.logg.Info(s.logg.WithField(ctx, "records", len(assignments)), "collection reordered")

	return s.GetAll(ctx)
}

func (s *Service[T, PT]) validateRecord(record PT) error {
	err := s.validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		return errors.New(errors.CodeValidation, fmt.Sprintf("invalid %s payload", s.typeName)).
			WithDetails(details)
	}
	return errors.Wrap(errors.CodeValidation, err, fmt.Sprintf("invalid %s payload", s.typeName))
}

func (s *Service[T, PT]) mapRepoErr(err error, action string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New(errors.CodeNotFound, fmt.Sprintf("%s record not found", s.typeName))
	}
	return errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("%s: %s", s.typeName, action))
}
