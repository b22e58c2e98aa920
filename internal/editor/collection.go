package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/brightlaunch/academy-cms-backend/internal/content"
	"github.com/brightlaunch/academy-cms-backend/internal/records"
	"github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/reorder"
	"github.com/google/uuid"
)

// systemFields are owned by the services and are never accepted from operator
// payloads. Order changes go through the order endpoints.
var systemFields = map[string]struct{}{
	"id":         {},
	"order":      {},
	"created_at": {},
	"updated_at": {},
}

// Collection is the type-erased editing surface over one ordered content
// collection. Mutating calls return the full refreshed collection so the
// editor always renders what storage actually holds.
type Collection interface {
	TypeName() string
	Schema() Schema
	List(ctx context.Context) (any, error)
	ListVisible(ctx context.Context) (any, error)
	Create(ctx context.Context, payload json.RawMessage) (any, error)
	Update(ctx context.Context, id uuid.UUID, payload json.RawMessage) (any, error)
	Delete(ctx context.Context, id uuid.UUID) (any, error)
	UpdateOrder(ctx context.Context, assignments []reorder.Assignment) (any, error)
	Reorder(ctx context.Context, sourceIndex, targetSlot int) (any, error)
}

type boundCollection[T any, PT interface {
	records.Record
	*T
}] struct {
	schema Schema
	svc    *content.Service[T, PT]
}

// Bind adapts a typed content service to the editor's Collection surface
// using the given field schema.
func Bind[T any, PT interface {
	records.Record
	*T
}](schema Schema, svc *content.Service[T, PT]) Collection {
	return &boundCollection[T, PT]{schema: schema, svc: svc}
}

func (c *boundCollection[T, PT]) TypeName() string { return c.schema.TypeName }

func (c *boundCollection[T, PT]) Schema() Schema { return c.schema }

func (c *boundCollection[T, PT]) List(ctx context.Context) (any, error) {
	recs, err := c.svc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *boundCollection[T, PT]) ListVisible(ctx context.Context) (any, error) {
	recs, err := c.svc.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *boundCollection[T, PT]) Create(ctx context.Context, payload json.RawMessage) (any, error) {
	clean, err := c.sanitize(payload)
	if err != nil {
		return nil, err
	}
	if err := c.checkRequired(clean, true); err != nil {
		return nil, err
	}

	buf, err := json.Marshal(clean)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "encoding sanitized payload")
	}
	var rec T
	if err := json.Unmarshal(buf, &rec); err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, fmt.Sprintf("payload does not match %s fields", c.schema.TypeName))
	}
	if _, err := c.svc.Create(ctx, PT(&rec)); err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (c *boundCollection[T, PT]) Update(ctx context.Context, id uuid.UUID, payload json.RawMessage) (any, error) {
	clean, err := c.sanitize(payload)
	if err != nil {
		return nil, err
	}
	if len(clean) == 0 {
		return nil, errors.New(errors.CodeValidation, "payload carries no editable fields")
	}
	if err := c.checkRequired(clean, false); err != nil {
		return nil, err
	}
	buf, err := json.Marshal(clean)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "encoding sanitized payload")
	}

	_, err = c.svc.Update(ctx, id, func(rec PT) error {
		// Partial merge: keys absent from the payload keep their stored value.
		if err := json.Unmarshal(buf, rec); err != nil {
			return errors.Wrap(errors.CodeValidation, err, fmt.Sprintf("payload does not match %s fields", c.schema.TypeName))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (c *boundCollection[T, PT]) Delete(ctx context.Context, id uuid.UUID) (any, error) {
	if err := c.svc.Delete(ctx, id); err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (c *boundCollection[T, PT]) UpdateOrder(ctx context.Context, assignments []reorder.Assignment) (any, error) {
	if err := c.svc.UpdateOrder(ctx, assignments); err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (c *boundCollection[T, PT]) Reorder(ctx context.Context, sourceIndex, targetSlot int) (any, error) {
	recs, err := c.svc.Reorder(ctx, sourceIndex, targetSlot)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// sanitize parses the payload object, drops system fields, and drops keys the
// schema does not declare. Visibility is always editable.
func (c *boundCollection[T, PT]) sanitize(payload json.RawMessage) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, errors.New(errors.CodeValidation, "payload is required")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "payload must be a json object")
	}
	for key := range fields {
		if _, system := systemFields[key]; system {
			delete(fields, key)
			continue
		}
		if key == "is_visible" {
			continue
		}
		if !c.schema.HasField(key) {
			delete(fields, key)
		}
	}
	return fields, nil
}

// checkRequired enforces the schema's required keys. With full set, absent
// keys fail too; otherwise only keys present with an empty value fail, so
// partial updates can leave required fields untouched.
func (c *boundCollection[T, PT]) checkRequired(fields map[string]json.RawMessage, full bool) error {
	var missing []string
	for _, key := range c.schema.RequiredKeys() {
		raw, ok := fields[key]
		if !ok {
			if full {
				missing = append(missing, key)
			}
			continue
		}
		if isEmptyJSON(raw) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.CodeValidation, fmt.Sprintf("%s payload is missing required fields", c.schema.TypeName)).
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := string(bytes.TrimSpace(raw))
	return trimmed == "" || trimmed == "null" || trimmed == `""`
}
