package handler

import (
	"context"
	"encoding/json"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/transform"
)

type calendarStore interface {
	UpsertCalendarEvent(ctx context.Context, e *domain.CalendarEvent) (bool, error)
	DeleteCalendarEvent(ctx context.Context, identifier string) (bool, error)
}

// CalendarHandler owns the EVENT_* family (scheduled sessions).
type CalendarHandler struct {
	store calendarStore
}

func NewCalendarHandler(store calendarStore) *CalendarHandler {
	return &CalendarHandler{store: store}
}

func (h *CalendarHandler) HandleUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseCalendarEvent(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "calendar-event", Field: "identifier"}
	}

	e := transform.ToCalendarEvent(p)
	created, err := h.store.UpsertCalendarEvent(ctx, e)
	if err != nil {
		return nil, &domain.StorageError{Entity: "calendar-event", Key: e.Identifier, Err: err}
	}
	return upsertResult(created), nil
}

func (h *CalendarHandler) HandleDelete(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseCalendarEvent(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "calendar-event", Field: "identifier"}
	}

	found, err := h.store.DeleteCalendarEvent(ctx, p.Key())
	if err != nil {
		return nil, &domain.StorageError{Entity: "calendar-event", Key: p.Key(), Err: err}
	}
	return deleteResult(found), nil
}
