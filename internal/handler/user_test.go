package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

// fakeUserStore keeps rows in memory with upsert semantics matching the
// gateway contract: insert on first write, update in place after, with
// updated_at refreshed on every write.
type fakeUserStore struct {
	users   map[string]*domain.User
	cohorts map[string]*domain.Cohort
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   map[string]*domain.User{},
		cohorts: map[string]*domain.Cohort{},
	}
}

func (f *fakeUserStore) UpsertUser(ctx context.Context, u *domain.User) (bool, error) {
	_, exists := f.users[u.Identifier]
	u.UpdatedAt = time.Now()
	f.users[u.Identifier] = u
	return !exists, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, identifier string) (bool, error) {
	_, exists := f.users[identifier]
	delete(f.users, identifier)
	return exists, nil
}

func (f *fakeUserStore) UpsertCohort(ctx context.Context, c *domain.Cohort) (bool, error) {
	_, exists := f.cohorts[c.Identifier]
	f.cohorts[c.Identifier] = c
	return !exists, nil
}

func (f *fakeUserStore) DeleteCohort(ctx context.Context, identifier string) (bool, error) {
	_, exists := f.cohorts[identifier]
	delete(f.cohorts, identifier)
	return exists, nil
}

func TestUserUpsert_IsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(store)

	payload := json.RawMessage(`{"identifier":"u1","username":"asha","name":"Asha K"}`)

	first, err := h.HandleUserUpsert(context.Background(), payload)
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if first.Created != 1 || first.Updated != 0 {
		t.Errorf("first delivery: created=%d updated=%d, want created=1", first.Created, first.Updated)
	}

	firstWrite := store.users["u1"].UpdatedAt

	second, err := h.HandleUserUpsert(context.Background(), payload)
	if err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if second.Created != 0 || second.Updated != 1 {
		t.Errorf("second delivery: created=%d updated=%d, want updated=1", second.Created, second.Updated)
	}

	if len(store.users) != 1 {
		t.Errorf("expected exactly one row, got %d", len(store.users))
	}
	if !store.users["u1"].UpdatedAt.After(firstWrite) && !store.users["u1"].UpdatedAt.Equal(firstWrite) {
		t.Error("updated_at must advance on redelivery")
	}
}

func TestUserUpsert_FallsBackToInternalID(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(store)

	_, err := h.HandleUserUpsert(context.Background(),
		json.RawMessage(`{"_id":"mongo-1","name":"No Identifier"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.users["mongo-1"] == nil {
		t.Error("expected row keyed by the producer's _id")
	}
}

func TestUserUpsert_MissingIdentifierIsValidationError(t *testing.T) {
	h := NewUserHandler(newFakeUserStore())

	_, err := h.HandleUserUpsert(context.Background(), json.RawMessage(`{"name":"nobody"}`))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserDelete_RemovesRowByNaturalKey(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(store)

	if _, err := h.HandleUserUpsert(context.Background(),
		json.RawMessage(`{"identifier":"u1","name":"Asha K"}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	result, err := h.HandleUserDelete(context.Background(),
		json.RawMessage(`{"identifier":"u1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", result.Deleted)
	}
	if len(store.users) != 0 {
		t.Error("row u1 should be gone")
	}

	// Deleting an absent row is not an error, just a skip.
	result, err = h.HandleUserDelete(context.Background(),
		json.RawMessage(`{"identifier":"u1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
}

func TestCohortUpsertAndDelete(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(store)

	result, err := h.HandleCohortUpsert(context.Background(),
		json.RawMessage(`{"identifier":"cohort-1","name":"Batch 2026","type":"program"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("created = %d, want 1", result.Created)
	}

	result, err = h.HandleCohortDelete(context.Background(),
		json.RawMessage(`{"identifier":"cohort-1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", result.Deleted)
	}
}
