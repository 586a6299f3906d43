package store

import (
	"context"
	"fmt"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

func (s *PostgresStore) UpsertAttendance(ctx context.Context, a *domain.Attendance) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO attendance (identifier, user_id, event_id, date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (identifier) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			event_id = EXCLUDED.event_id,
			date = EXCLUDED.date,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, a.Identifier, a.UserID, a.EventID, a.Date, a.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting attendance: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) DeleteAttendance(ctx context.Context, identifier string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM attendance WHERE identifier = $1`, identifier)
	if err != nil {
		return false, fmt.Errorf("deleting attendance: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) UpsertAssessment(ctx context.Context, a *domain.Assessment) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO assessments (identifier, user_id, course_id, score, max_score, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (identifier) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			course_id = EXCLUDED.course_id,
			score = EXCLUDED.score,
			max_score = EXCLUDED.max_score,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, a.Identifier, a.UserID, a.CourseID, a.Score, a.MaxScore, a.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting assessment: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) DeleteAssessment(ctx context.Context, identifier string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM assessments WHERE identifier = $1`, identifier)
	if err != nil {
		return false, fmt.Errorf("deleting assessment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) UpsertCalendarEvent(ctx context.Context, e *domain.CalendarEvent) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO calendar_events (identifier, title, start_time, end_time, location, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (identifier) DO UPDATE SET
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, e.Identifier, e.Title, e.StartTime, e.EndTime, e.Location, e.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting calendar event: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) DeleteCalendarEvent(ctx context.Context, identifier string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM calendar_events WHERE identifier = $1`, identifier)
	if err != nil {
		return false, fmt.Errorf("deleting calendar event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
