package handler

import (
	"context"
	"encoding/json"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/transform"
)

type courseStore interface {
	UpsertCourse(ctx context.Context, c *domain.Course) (bool, error)
	UpsertEnrollment(ctx context.Context, e *domain.CourseEnrollment) (bool, error)
	UpdateEnrollmentStatus(ctx context.Context, userID, courseID, status string) (bool, error)
}

// CourseHandler owns course catalog entries (from the scheduled pull) and
// course enrollments (from the bus).
type CourseHandler struct {
	store courseStore
}

func NewCourseHandler(store courseStore) *CourseHandler {
	return &CourseHandler{store: store}
}

func (h *CourseHandler) HandleEnrollmentUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseEnrollment(data)
	if err != nil {
		return nil, err
	}
	if p.UserID == "" {
		return nil, &domain.ValidationError{Entity: "enrollment", Field: "userId"}
	}
	if p.CourseID == "" {
		return nil, &domain.ValidationError{Entity: "enrollment", Field: "courseId"}
	}

	e := transform.ToEnrollment(p)
	created, err := h.store.UpsertEnrollment(ctx, e)
	if err != nil {
		return nil, &domain.StorageError{Entity: "enrollment", Key: e.UserID + "/" + e.CourseID, Err: err}
	}
	return upsertResult(created), nil
}

func (h *CourseHandler) HandleStatusUpdate(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseEnrollment(data)
	if err != nil {
		return nil, err
	}
	if p.UserID == "" {
		return nil, &domain.ValidationError{Entity: "enrollment", Field: "userId"}
	}
	if p.CourseID == "" {
		return nil, &domain.ValidationError{Entity: "enrollment", Field: "courseId"}
	}
	if p.Status == "" {
		return nil, &domain.ValidationError{Entity: "enrollment", Field: "status"}
	}

	created, err := h.store.UpdateEnrollmentStatus(ctx, p.UserID, p.CourseID, p.Status)
	if err != nil {
		return nil, &domain.StorageError{Entity: "enrollment", Key: p.UserID + "/" + p.CourseID, Err: err}
	}
	return upsertResult(created), nil
}

// HandleCourseUpsert processes one catalog item from the external content
// API pull.
func (h *CourseHandler) HandleCourseUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseCourse(data)
	if err != nil {
		return nil, err
	}
	if p.Identifier == "" {
		return nil, &domain.ValidationError{Entity: "course", Field: "identifier"}
	}

	c := transform.ToCourse(p)
	created, err := h.store.UpsertCourse(ctx, c)
	if err != nil {
		return nil, &domain.StorageError{Entity: "course", Key: c.Identifier, Err: err}
	}
	return upsertResult(created), nil
}
