// Package reorder turns a drag gesture over an ordered collection into a
// renumbered order assignment. It is pure; callers persist the result.
package reorder

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptySequence    = errors.New("sequence is empty")
	ErrSourceOutOfRange = errors.New("source index out of range")
	ErrTargetOutOfRange = errors.New("target slot out of range")
)

// Assignment pairs an item identity with its renumbered display position.
type Assignment struct {
	ID    uuid.UUID
	Order int
}

// Move computes the order assignments after dragging the item at sourceIndex
// to targetSlot. The sequence must be sorted ascending by current order, and
// targetSlot is the display slot the dragged item occupies afterwards, so
// valid slots run 1..len(seq). Slot 1 makes the item first.
//
// The second return value reports whether anything moved. A drag onto the
// item's own slot is detected up front and returns (nil, false, nil) so the
// caller can skip persistence entirely.
func Move(seq []uuid.UUID, sourceIndex, targetSlot int) ([]Assignment, bool, error) {
	n := len(seq)
	if n == 0 {
		return nil, false, ErrEmptySequence
	}
	if sourceIndex < 0 || sourceIndex >= n {
		return nil, false, ErrSourceOutOfRange
	}
	if targetSlot < 1 || targetSlot > n {
		return nil, false, ErrTargetOutOfRange
	}

	// The item at sourceIndex already sits in slot sourceIndex+1.
	if targetSlot == sourceIndex+1 {
		return nil, false, nil
	}

	dragged := seq[sourceIndex]

	remaining := make([]uuid.UUID, 0, n-1)
	remaining = append(remaining, seq[:sourceIndex]...)
	remaining = append(remaining, seq[sourceIndex+1:]...)

	// Inserting at slot-1 lands the dragged item exactly on targetSlot,
	// regardless of drag direction.
	insertIndex := targetSlot - 1

	result := make([]uuid.UUID, 0, n)
	result = append(result, remaining[:insertIndex]...)
	result = append(result, dragged)
	result = append(result, remaining[insertIndex:]...)

	return Renumber(result), true, nil
}

// Renumber assigns a dense 1..N ordering to the sequence as-is, closing any
// gaps without moving anything.
func Renumber(seq []uuid.UUID) []Assignment {
	assignments := make([]Assignment, len(seq))
	for p, id := range seq {
		assignments[p] = Assignment{ID: id, Order: p + 1}
	}
	return assignments
}
