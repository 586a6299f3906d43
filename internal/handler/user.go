package handler

import (
	"context"
	"encoding/json"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/transform"
)

type userStore interface {
	UpsertUser(ctx context.Context, u *domain.User) (bool, error)
	DeleteUser(ctx context.Context, identifier string) (bool, error)
	UpsertCohort(ctx context.Context, c *domain.Cohort) (bool, error)
	DeleteCohort(ctx context.Context, identifier string) (bool, error)
}

// UserHandler owns the user and cohort families.
type UserHandler struct {
	store userStore
}

func NewUserHandler(store userStore) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) HandleUserUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseUser(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "user", Field: "identifier"}
	}

	u := transform.ToUser(p)
	created, err := h.store.UpsertUser(ctx, u)
	if err != nil {
		return nil, &domain.StorageError{Entity: "user", Key: u.Identifier, Err: err}
	}
	return upsertResult(created), nil
}

func (h *UserHandler) HandleUserDelete(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseUser(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "user", Field: "identifier"}
	}

	found, err := h.store.DeleteUser(ctx, p.Key())
	if err != nil {
		return nil, &domain.StorageError{Entity: "user", Key: p.Key(), Err: err}
	}
	return deleteResult(found), nil
}

func (h *UserHandler) HandleCohortUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseCohort(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "cohort", Field: "identifier"}
	}

	c := transform.ToCohort(p)
	created, err := h.store.UpsertCohort(ctx, c)
	if err != nil {
		return nil, &domain.StorageError{Entity: "cohort", Key: c.Identifier, Err: err}
	}
	return upsertResult(created), nil
}

func (h *UserHandler) HandleCohortDelete(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseCohort(data)
	if err != nil {
		return nil, err
	}
	if p.Key() == "" {
		return nil, &domain.ValidationError{Entity: "cohort", Field: "identifier"}
	}

	found, err := h.store.DeleteCohort(ctx, p.Key())
	if err != nil {
		return nil, &domain.StorageError{Entity: "cohort", Key: p.Key(), Err: err}
	}
	return deleteResult(found), nil
}
