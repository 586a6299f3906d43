package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/transform"
)

type projectStore interface {
	UpsertProject(ctx context.Context, p *domain.Project) (bool, error)
	UpsertProjectTask(ctx context.Context, t *domain.ProjectTask) (bool, error)
	TrackedTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) (map[string]bool, error)
	InsertTaskTracking(ctx context.Context, t *domain.TaskTracking) error
}

// trackingCache is a fast path over the tracked-task store query. It is
// advisory: any cache failure falls through to the store, which stays
// authoritative for the dedup invariant.
type trackingCache interface {
	CachedTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) (map[string]bool, error)
	CacheTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) error
}

// ProjectHandler owns projects, their tasks, and completed-task tracking.
type ProjectHandler struct {
	store  projectStore
	cache  trackingCache
	logger *slog.Logger
}

func NewProjectHandler(store projectStore, cache trackingCache, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{store: store, cache: cache, logger: logger}
}

func (h *ProjectHandler) HandleProjectUpsert(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseProject(data)
	if err != nil {
		return nil, err
	}
	if p.ProjectTemplate.ProjectTemplateID == "" {
		return nil, &domain.ValidationError{Entity: "project", Field: "projectTemplate.projectTemplateId"}
	}

	proj := transform.ToProject(p)
	created, err := h.store.UpsertProject(ctx, proj)
	if err != nil {
		return nil, &domain.StorageError{Entity: "project", Key: proj.TemplateID, Err: err}
	}
	return upsertResult(created), nil
}

// HandleProjectSync processes a full project-sync message: upserts every
// task, then records tracking rows for the completed ones. Redelivery of the
// same completion must never create a duplicate tracking row; the bus is
// at-least-once and provides no dedup of its own.
func (h *ProjectHandler) HandleProjectSync(ctx context.Context, data json.RawMessage) (*Result, error) {
	p, err := transform.ParseProjectSync(data)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, &domain.ValidationError{Entity: "project-sync", Field: "_id"}
	}
	if p.SolutionID == "" {
		return nil, &domain.ValidationError{Entity: "project-sync", Field: "solutionId"}
	}
	if p.UserID == "" {
		return nil, &domain.ValidationError{Entity: "project-sync", Field: "userId"}
	}
	if p.Tasks == nil {
		return nil, &domain.ValidationError{Entity: "project-sync", Field: "tasks"}
	}

	projectID := transform.ProjectIDFromSolution(p.SolutionID)

	result := &Result{}
	for _, t := range p.Tasks {
		if t.Key() == "" {
			continue
		}
		created, err := h.store.UpsertProjectTask(ctx, &domain.ProjectTask{
			ProjectID: projectID,
			TaskID:    t.Key(),
			Name:      t.Name,
			Status:    t.Status,
		})
		if err != nil {
			return nil, &domain.StorageError{Entity: "project-task", Key: projectID + "/" + t.Key(), Err: err}
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	inserted, skipped, err := h.trackCompletions(ctx, projectID, p.UserID, transform.CompletedTasks(p.Tasks))
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted
	result.Skipped += skipped

	return result, nil
}

// trackCompletions partitions the completed-task set into new and already
// tracked, inserts only the new partition, and reports both counts. An empty
// completed set short-circuits without touching storage.
func (h *ProjectHandler) trackCompletions(ctx context.Context, projectID, userID string, completed []transform.TaskSyncPayload) (inserted, skipped int, err error) {
	if len(completed) == 0 {
		return 0, 0, nil
	}

	seen := make(map[string]bool, len(completed))
	candidates := make([]string, 0, len(completed))
	for _, t := range completed {
		id := t.Key()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return 0, 0, nil
	}

	cached := map[string]bool{}
	if h.cache != nil {
		cached, err = h.cache.CachedTaskIDs(ctx, projectID, userID, candidates)
		if err != nil {
			h.logger.Warn("tracked-task cache unavailable, falling back to store",
				"project_id", projectID, "error", err)
			cached = map[string]bool{}
		}
	}

	var unknown []string
	for _, id := range candidates {
		if cached[id] {
			skipped++
		} else {
			unknown = append(unknown, id)
		}
	}

	if len(unknown) == 0 {
		return 0, skipped, nil
	}

	tracked, err := h.store.TrackedTaskIDs(ctx, projectID, userID, unknown)
	if err != nil {
		return 0, 0, &domain.StorageError{Entity: "task-tracking", Key: projectID + "/" + userID, Err: err}
	}

	var fresh []string
	for _, id := range unknown {
		if tracked[id] {
			skipped++
			continue
		}
		if err := h.store.InsertTaskTracking(ctx, &domain.TaskTracking{
			ProjectID: projectID,
			UserID:    userID,
			TaskID:    id,
		}); err != nil {
			return inserted, skipped, &domain.StorageError{Entity: "task-tracking", Key: projectID + "/" + id, Err: err}
		}
		inserted++
		fresh = append(fresh, id)
	}

	if h.cache != nil {
		known := fresh
		for id := range tracked {
			known = append(known, id)
		}
		if err := h.cache.CacheTaskIDs(ctx, projectID, userID, known); err != nil {
			h.logger.Warn("failed to warm tracked-task cache",
				"project_id", projectID, "error", err)
		}
	}

	return inserted, skipped, nil
}
