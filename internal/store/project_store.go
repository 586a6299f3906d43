package store

import (
	"context"
	"fmt"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

func (s *PostgresStore) UpsertProject(ctx context.Context, p *domain.Project) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO projects (template_id, name, description, category, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (template_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, p.TemplateID, p.Name, p.Description, p.Category, p.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting project: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) UpsertProjectTask(ctx context.Context, t *domain.ProjectTask) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO project_tasks (project_id, task_id, name, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, task_id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, t.ProjectID, t.TaskID, t.Name, t.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting project task: %w", err)
	}
	return created, nil
}

// TrackedTaskIDs returns, out of the given candidates, the task ids that
// already have a tracking row for this (project, user) pair. One batch query
// for the whole candidate set.
func (s *PostgresStore) TrackedTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) (map[string]bool, error) {
	tracked := make(map[string]bool, len(taskIDs))
	if len(taskIDs) == 0 {
		return tracked, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT task_id FROM project_task_tracking
		WHERE project_id = $1 AND user_id = $2 AND task_id = ANY($3)
	`, projectID, userID, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("querying tracked tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning tracked task: %w", err)
		}
		tracked[id] = true
	}

	return tracked, nil
}

// InsertTaskTracking records one completed-task observation. ON CONFLICT DO
// NOTHING keeps the insert safe against a concurrent writer racing the
// batch lookup.
func (s *PostgresStore) InsertTaskTracking(ctx context.Context, t *domain.TaskTracking) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO project_task_tracking (project_id, user_id, task_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id, task_id) DO NOTHING
	`, t.ProjectID, t.UserID, t.TaskID)
	if err != nil {
		return fmt.Errorf("inserting task tracking: %w", err)
	}
	return nil
}
