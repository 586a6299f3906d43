package handler

import (
	"context"
	"encoding/json"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/transform"
)

type assessmentStore interface {
	UpsertAssessment(ctx context.Context, a *domain.Assessment) (bool, error)
	DeleteAssessment(ctx context.Context, identifier string) (bool, error)
	UpsertQuestionSet(ctx context.Context, q *domain.QuestionSet) (bool, error)
}

// AssessmentHandler owns submitted assessments (from the bus) and question
// sets (from the scheduled pull).
type AssessmentHandler struct {
	store assessmentStore
}

func NewAssessmentHandler(store assessmentStore) *AssessmentHandler {
	return &AssessmentHandler{store: store}
}

func (h *AssessmentHandler) HandleUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseAssessment(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "assessment", Field: "identifier"}
	}

	a := transform.ToAssessment(p)
	created, err := h.store.UpsertAssessment(ctx, a)
	if err != nil {
		return nil, &domain.StorageError{Entity: "assessment", Key: a.Identifier, Err: err}
	}
	return upsertResult(created), nil
}

func (h *AssessmentHandler) HandleDelete(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseAssessment(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "assessment", Field: "identifier"}
	}

	found, err := h.store.DeleteAssessment(ctx, p.Key())
	if err != nil {
		return nil, &domain.StorageError{Entity: "assessment", Key: p.Key(), Err: err}
	}
	return deleteResult(found), nil
}

// HandleQuestionSetUpsert processes one question-set item from the external
// content API pull.
func (h *AssessmentHandler) HandleQuestionSetUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseQuestionSet(data)
	if err != nil {
		return nil, err
	}
	if p.Identifier == "" {
		return nil, &domain.ValidationError{Entity: "question-set", Field: "identifier"}
	}

	q := transform.ToQuestionSet(p)
	created, err := h.store.UpsertQuestionSet(ctx, q)
	if err != nil {
		return nil, &domain.StorageError{Entity: "question-set", Key: q.Identifier, Err: err}
	}
	return upsertResult(created), nil
}
