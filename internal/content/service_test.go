package content

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	"github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/brightlaunch/academy-cms-backend/pkg/reorder"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type orderWrite struct {
	id    uuid.UUID
	order int
}

type stubRepo struct {
	records     map[uuid.UUID]*models.FAQ
	orderWrites []orderWrite
	failOrder   map[uuid.UUID]error
	getAllErr   error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		records:   make(map[uuid.UUID]*models.FAQ),
		failOrder: make(map[uuid.UUID]error),
	}
}

func (s *stubRepo) GetAll(ctx context.Context) ([]*models.FAQ, error) {
	if s.getAllErr != nil {
		return nil, s.getAllErr
	}
	out := make([]*models.FAQ, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.FAQ, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (s *stubRepo) Create(ctx context.Context, record *models.FAQ) error {
	s.records[record.ID] = record
	return nil
}

func (s *stubRepo) Save(ctx context.Context, record *models.FAQ) error {
	if _, ok := s.records[record.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.records[record.ID] = record
	return nil
}

func (s *stubRepo) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	s.orderWrites = append(s.orderWrites, orderWrite{id: id, order: order})
	if err, ok := s.failOrder[id]; ok {
		return err
	}
	rec, ok := s.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.OrderIndex = order
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *stubRepo) MaxOrder(ctx context.Context) (int, error) {
	max := 0
	for _, rec := range s.records {
		if rec.OrderIndex > max {
			max = rec.OrderIndex
		}
	}
	return max, nil
}

func newTestService(t *testing.T, repo *stubRepo) *Service[models.FAQ, *models.FAQ] {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "content-test"})
	svc, err := NewService[models.FAQ]("faqs", repo, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedFAQ(repo *stubRepo, order int, visible bool) *models.FAQ {
	faq := &models.FAQ{
		Question: "How long is the program?",
		Answer:   "Twelve weeks.",
	}
	faq.ID = uuid.New()
	faq.OrderIndex = order
	faq.IsVisible = visible
	faq.CreatedAt = time.Now().UTC().Add(time.Duration(order) * time.Millisecond)
	repo.records[faq.ID] = faq
	return faq
}

func TestCreateAppendsAtEnd(t *testing.T) {
	repo := newStubRepo()
	seedFAQ(repo, 1, true)
	seedFAQ(repo, 2, true)
	svc := newTestService(t, repo)

	record := &models.FAQ{Question: "Is housing included?", Answer: "No."}
	record.IsVisible = true

	created, err := svc.Create(context.Background(), record)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.RecordID() == uuid.Nil {
		t.Fatal("expected assigned id")
	}
	if created.Order() != 3 {
		t.Fatalf("expected order 3, got %d", created.Order())
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected stamped timestamps")
	}
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	record := &models.FAQ{Question: "", Answer: "Missing question."}
	_, err := svc.Create(context.Background(), record)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["Question"] != "required" {
		t.Fatalf("expected Question required in details, got %v", typed.Details())
	}
	if len(repo.records) != 0 {
		t.Fatal("invalid record must not be persisted")
	}
}

func TestUpdateAppliesMutationAndPreservesOrder(t *testing.T) {
	repo := newStubRepo()
	faq := seedFAQ(repo, 2, true)
	svc := newTestService(t, repo)

	updated, err := svc.Update(context.Background(), faq.ID, func(rec *models.FAQ) error {
		rec.Answer = "Twelve weeks, full time."
		rec.OrderIndex = 99 // mutation must not be able to move the record
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Answer != "Twelve weeks, full time." {
		t.Fatalf("unexpected answer %q", updated.Answer)
	}
	if updated.Order() != 2 {
		t.Fatalf("order must survive update, got %d", updated.Order())
	}
	if updated.RecordID() != faq.ID {
		t.Fatal("identity must survive update")
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.Update(context.Background(), uuid.New(), func(rec *models.FAQ) error { return nil })
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteMapsNotFound(t *testing.T) {
	repo := newStubRepo()
	faq := seedFAQ(repo, 1, true)
	svc := newTestService(t, repo)
	ctx := context.Background()

	if err := svc.Delete(ctx, faq.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := svc.Delete(ctx, faq.ID)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateOrderContinuesPastFailures(t *testing.T) {
	repo := newStubRepo()
	a := seedFAQ(repo, 1, true)
	b := seedFAQ(repo, 2, true)
	c := seedFAQ(repo, 3, true)
	repo.failOrder[b.ID] = gorm.ErrInvalidTransaction
	svc := newTestService(t, repo)

	assignments := []reorder.Assignment{
		{ID: c.ID, Order: 1},
		{ID: b.ID, Order: 2},
		{ID: a.ID, Order: 3},
	}
	err := svc.UpdateOrder(context.Background(), assignments)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	// All three writes must have been attempted despite the middle failure.
	if len(repo.orderWrites) != 3 {
		t.Fatalf("expected 3 write attempts, got %d", len(repo.orderWrites))
	}
	// Successful writes stay applied; there is no rollback.
	if c.OrderIndex != 1 || a.OrderIndex != 3 {
		t.Fatal("successful writes should persist")
	}
	if got := len(multierr.Errors(typed.Unwrap())); got != 1 {
		t.Fatalf("expected 1 aggregated failure, got %d", got)
	}
}

func TestUpdateOrderIsIdempotent(t *testing.T) {
	repo := newStubRepo()
	a := seedFAQ(repo, 1, true)
	b := seedFAQ(repo, 2, true)
	svc := newTestService(t, repo)
	ctx := context.Background()

	assignments := []reorder.Assignment{
		{ID: b.ID, Order: 1},
		{ID: a.ID, Order: 2},
	}
	for i := 0; i < 2; i++ {
		if err := svc.UpdateOrder(ctx, assignments); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}
	if b.OrderIndex != 1 || a.OrderIndex != 2 {
		t.Fatal("orders should match assignments after repeat application")
	}
}

func TestReorderDragPersistsRenumbering(t *testing.T) {
	repo := newStubRepo()
	items := make([]*models.FAQ, 5)
	for i := range items {
		items[i] = seedFAQ(repo, i+1, true)
	}
	svc := newTestService(t, repo)

	// Drag the item at index 3 to slot 1.
	result, err := svc.Reorder(context.Background(), 3, 1)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	wantIDs := []uuid.UUID{items[3].ID, items[0].ID, items[1].ID, items[2].ID, items[4].ID}
	if len(result) != len(wantIDs) {
		t.Fatalf("expected %d records, got %d", len(wantIDs), len(result))
	}
	for i, want := range wantIDs {
		if result[i].RecordID() != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, result[i].RecordID())
		}
		if result[i].Order() != i+1 {
			t.Fatalf("position %d: expected order %d, got %d", i, i+1, result[i].Order())
		}
	}
}

func TestReorderSelfDropSkipsPersistence(t *testing.T) {
	repo := newStubRepo()
	for i := 0; i < 3; i++ {
		seedFAQ(repo, i+1, true)
	}
	svc := newTestService(t, repo)

	// The item at index 1 already occupies slot 2.
	result, err := svc.Reorder(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if len(repo.orderWrites) != 0 {
		t.Fatalf("self-drop must not issue writes, got %d", len(repo.orderWrites))
	}
	if len(result) != 3 {
		t.Fatalf("expected full collection back, got %d", len(result))
	}
}

func TestReorderExcludesHiddenRecords(t *testing.T) {
	repo := newStubRepo()
	visibleA := seedFAQ(repo, 1, true)
	hidden := seedFAQ(repo, 2, false)
	visibleB := seedFAQ(repo, 3, true)
	svc := newTestService(t, repo)

	// Visible sequence is [A, B]; drag A past B.
	_, err := svc.Reorder(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	for _, write := range repo.orderWrites {
		if write.id == hidden.ID {
			t.Fatal("hidden record must not receive an order write")
		}
	}
	if visibleB.OrderIndex != 1 || visibleA.OrderIndex != 2 {
		t.Fatalf("unexpected visible orders: %d, %d", visibleB.OrderIndex, visibleA.OrderIndex)
	}
	if hidden.OrderIndex != 2 {
		t.Fatalf("hidden record order must be untouched, got %d", hidden.OrderIndex)
	}
}

func TestReorderInvalidGesture(t *testing.T) {
	repo := newStubRepo()
	seedFAQ(repo, 1, true)
	svc := newTestService(t, repo)

	_, err := svc.Reorder(context.Background(), 4, 0)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
