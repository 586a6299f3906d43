package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeProjectStore tracks tracking rows in memory and counts calls.
type fakeProjectStore struct {
	projects    map[string]bool
	tasks       map[string]bool
	tracked     map[string]bool
	lookupCalls int
	insertCalls int
	insertErr   error
	lookupErr   error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		projects: map[string]bool{},
		tasks:    map[string]bool{},
		tracked:  map[string]bool{},
	}
}

func trackKey(projectID, userID, taskID string) string {
	return projectID + "|" + userID + "|" + taskID
}

func (f *fakeProjectStore) UpsertProject(ctx context.Context, p *domain.Project) (bool, error) {
	created := !f.projects[p.TemplateID]
	f.projects[p.TemplateID] = true
	return created, nil
}

func (f *fakeProjectStore) UpsertProjectTask(ctx context.Context, t *domain.ProjectTask) (bool, error) {
	key := t.ProjectID + "|" + t.TaskID
	created := !f.tasks[key]
	f.tasks[key] = true
	return created, nil
}

func (f *fakeProjectStore) TrackedTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) (map[string]bool, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	result := map[string]bool{}
	for _, id := range taskIDs {
		if f.tracked[trackKey(projectID, userID, id)] {
			result[id] = true
		}
	}
	return result, nil
}

func (f *fakeProjectStore) InsertTaskTracking(ctx context.Context, t *domain.TaskTracking) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.tracked[trackKey(t.ProjectID, t.UserID, t.TaskID)] = true
	return nil
}

// fakeCache mirrors the redis tracked-task set.
type fakeCache struct {
	sets map[string]map[string]bool
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{sets: map[string]map[string]bool{}}
}

func (f *fakeCache) CachedTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) (map[string]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := map[string]bool{}
	set := f.sets[projectID+"|"+userID]
	for _, id := range taskIDs {
		if set[id] {
			result[id] = true
		}
	}
	return result, nil
}

func (f *fakeCache) CacheTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) error {
	if f.err != nil {
		return f.err
	}
	key := projectID + "|" + userID
	if f.sets[key] == nil {
		f.sets[key] = map[string]bool{}
	}
	for _, id := range taskIDs {
		f.sets[key][id] = true
	}
	return nil
}

func syncPayload(userID string, tasks string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"_id":"p1","solutionId":"solution:sol-1","userId":%q,"tasks":%s}`, userID, tasks))
}

func TestProjectSync_TracksOnlyCompletedTasks(t *testing.T) {
	store := newFakeProjectStore()
	h := NewProjectHandler(store, newFakeCache(), testLogger())

	payload := syncPayload("u1", `[
		{"taskId":"t1","name":"observe class","status":"completed"},
		{"taskId":"t2","name":"write report","status":"started"},
		{"taskId":"t3","name":"share findings","status":"completed"}
	]`)

	result, err := h.HandleProjectSync(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", result.Inserted)
	}
	if result.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", result.Skipped)
	}
	if store.insertCalls != 2 {
		t.Errorf("insert calls = %d, want 2", store.insertCalls)
	}
	if store.tracked[trackKey("sol-1", "u1", "t2")] {
		t.Error("non-completed task t2 must not produce a tracking row")
	}
}

func TestProjectSync_RedeliveryNeverDuplicates(t *testing.T) {
	store := newFakeProjectStore()
	// Pre-seed one completion as already tracked.
	store.tracked[trackKey("sol-1", "u1", "t1")] = true

	h := NewProjectHandler(store, newFakeCache(), testLogger())

	payload := syncPayload("u1", `[
		{"taskId":"t1","status":"completed"},
		{"taskId":"t2","status":"completed"},
		{"taskId":"t3","status":"completed"}
	]`)

	first, err := h.HandleProjectSync(context.Background(), payload)
	if err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if first.Inserted != 2 || first.Skipped != 1 {
		t.Errorf("first delivery: inserted=%d skipped=%d, want inserted=2 skipped=1",
			first.Inserted, first.Skipped)
	}

	second, err := h.HandleProjectSync(context.Background(), payload)
	if err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if second.Inserted != 0 || second.Skipped != 3 {
		t.Errorf("second delivery: inserted=%d skipped=%d, want inserted=0 skipped=3",
			second.Inserted, second.Skipped)
	}
	if store.insertCalls != 2 {
		t.Errorf("insert calls = %d, want 2 (no duplicate inserts)", store.insertCalls)
	}
}

func TestProjectSync_CacheShortCircuitsStoreLookup(t *testing.T) {
	store := newFakeProjectStore()
	cache := newFakeCache()
	h := NewProjectHandler(store, cache, testLogger())

	payload := syncPayload("u1", `[{"taskId":"t1","status":"completed"}]`)

	if _, err := h.HandleProjectSync(context.Background(), payload); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if store.lookupCalls != 1 {
		t.Fatalf("lookup calls after first delivery = %d, want 1", store.lookupCalls)
	}

	// Second delivery hits the warmed cache; the store is not consulted.
	if _, err := h.HandleProjectSync(context.Background(), payload); err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if store.lookupCalls != 1 {
		t.Errorf("lookup calls after second delivery = %d, want 1", store.lookupCalls)
	}
}

func TestProjectSync_CacheFailureFallsBackToStore(t *testing.T) {
	store := newFakeProjectStore()
	store.tracked[trackKey("sol-1", "u1", "t1")] = true
	cache := newFakeCache()
	cache.err = errors.New("redis down")

	h := NewProjectHandler(store, cache, testLogger())

	payload := syncPayload("u1", `[{"taskId":"t1","status":"completed"}]`)

	result, err := h.HandleProjectSync(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 0 || result.Skipped != 1 {
		t.Errorf("inserted=%d skipped=%d, want inserted=0 skipped=1", result.Inserted, result.Skipped)
	}
	if store.lookupCalls != 1 {
		t.Errorf("store must be consulted when the cache is down")
	}
}

func TestProjectSync_NoCompletedTasksTouchesNoTracking(t *testing.T) {
	store := newFakeProjectStore()
	h := NewProjectHandler(store, newFakeCache(), testLogger())

	payload := syncPayload("u1", `[{"taskId":"t1","status":"started"}]`)

	result, err := h.HandleProjectSync(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 0 || result.Skipped != 0 {
		t.Errorf("inserted=%d skipped=%d, want zero-effect result", result.Inserted, result.Skipped)
	}
	if store.lookupCalls != 0 || store.insertCalls != 0 {
		t.Errorf("tracking storage touched: lookups=%d inserts=%d", store.lookupCalls, store.insertCalls)
	}
}

func TestProjectSync_ValidationErrors(t *testing.T) {
	h := NewProjectHandler(newFakeProjectStore(), newFakeCache(), testLogger())

	tests := []struct {
		name    string
		payload string
	}{
		{"missing _id", `{"solutionId":"sol-1","userId":"u1","tasks":[]}`},
		{"missing solutionId", `{"_id":"p1","userId":"u1","tasks":[]}`},
		{"missing userId", `{"_id":"p1","solutionId":"sol-1","tasks":[]}`},
		{"missing tasks", `{"_id":"p1","solutionId":"sol-1","userId":"u1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.HandleProjectSync(context.Background(), json.RawMessage(tt.payload))
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestProjectSync_StorageFailureIsStorageError(t *testing.T) {
	store := newFakeProjectStore()
	store.insertErr = errors.New("connection reset")
	h := NewProjectHandler(store, newFakeCache(), testLogger())

	payload := syncPayload("u1", `[{"taskId":"t1","status":"completed"}]`)

	_, err := h.HandleProjectSync(context.Background(), payload)
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestProjectUpsert_RequiresTemplateID(t *testing.T) {
	h := NewProjectHandler(newFakeProjectStore(), newFakeCache(), testLogger())

	_, err := h.HandleProjectUpsert(context.Background(),
		json.RawMessage(`{"projectTemplate":{"title":"no id"}}`))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	result, err := h.HandleProjectUpsert(context.Background(),
		json.RawMessage(`{"projectTemplate":{"projectTemplateId":"pt-1","title":"clean school"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("created = %d, want 1", result.Created)
	}
}
