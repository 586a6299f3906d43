package store

import (
	"context"
	"fmt"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

// RecordSyncRun persists the outcome of one scheduled/manual sync execution.
func (s *PostgresStore) RecordSyncRun(ctx context.Context, r *domain.SyncRun) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_history (
			id, trigger_kind, status,
			courses_processed, courses_failed,
			question_sets_processed, question_sets_failed,
			error, duration_ms, started_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.ID, r.Trigger, r.Status,
		r.CoursesProcessed, r.CoursesFailed,
		r.QuestionSetsProcessed, r.QuestionSetsFailed,
		r.Error, r.DurationMs, r.StartedAt)
	if err != nil {
		return fmt.Errorf("recording sync run: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListSyncRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, trigger_kind, status,
			courses_processed, courses_failed,
			question_sets_processed, question_sets_failed,
			error, duration_ms, started_at
		FROM sync_history
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		var r domain.SyncRun
		err := rows.Scan(&r.ID, &r.Trigger, &r.Status,
			&r.CoursesProcessed, &r.CoursesFailed,
			&r.QuestionSetsProcessed, &r.QuestionSetsFailed,
			&r.Error, &r.DurationMs, &r.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning sync run: %w", err)
		}
		runs = append(runs, r)
	}

	if runs == nil {
		runs = []domain.SyncRun{}
	}

	return runs, nil
}
