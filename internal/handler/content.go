package handler

import (
	"context"
	"encoding/json"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/transform"
)

type contentStore interface {
	UpsertContentTracking(ctx context.Context, t *domain.ContentTracking) (bool, error)
}

type ContentHandler struct {
	store contentStore
}

func NewContentHandler(store contentStore) *ContentHandler {
	return &ContentHandler{store: store}
}

func (h *ContentHandler) HandleTrackingUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseContentTracking(data)
	if err != nil {
		return nil, err
	}
	if p.UserID == "" {
		return nil, &domain.ValidationError{Entity: "content-tracking", Field: "userId"}
	}
	if p.CourseID == "" {
		return nil, &domain.ValidationError{Entity: "content-tracking", Field: "courseId"}
	}
	if p.ContentID == "" {
		return nil, &domain.ValidationError{Entity: "content-tracking", Field: "contentId"}
	}

	t := transform.ToContentTracking(p)
	created, err := h.store.UpsertContentTracking(ctx, t)
	if err != nil {
		return nil, &domain.StorageError{Entity: "content-tracking", Key: t.UserID + "/" + t.ContentID, Err: err}
	}
	return upsertResult(created), nil
}
