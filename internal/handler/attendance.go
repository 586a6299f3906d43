package handler

import (
	"context"
	"encoding/json"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/transform"
)

type attendanceStore interface {
	UpsertAttendance(ctx context.Context, a *domain.Attendance) (bool, error)
	DeleteAttendance(ctx context.Context, identifier string) (bool, error)
}

type AttendanceHandler struct {
	store attendanceStore
}

func NewAttendanceHandler(store attendanceStore) *AttendanceHandler {
	return &AttendanceHandler{store: store}
}

func (h *AttendanceHandler) HandleUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseAttendance(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "attendance", Field: "identifier"}
	}
	if p.UserID == "" {
		return nil, &domain.ValidationError{Entity: "attendance", Field: "userId"}
	}

	a := transform.ToAttendance(p)
	created, err := h.store.UpsertAttendance(ctx, a)
	if err != nil {
		return nil, &domain.StorageError{Entity: "attendance", Key: a.Identifier, Err: err}
	}
	return upsertResult(created), nil
}

func (h *AttendanceHandler) HandleDelete(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseAttendance(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "attendance", Field: "identifier"}
	}

	found, err := h.store.DeleteAttendance(ctx, p.Key())
	if err != nil {
		return nil, &domain.StorageError{Entity: "attendance", Key: p.Key(), Err: err}
	}
	return deleteResult(found), nil
}
