package store

import (
	"context"
	"fmt"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

func (s *PostgresStore) UpsertCourse(ctx context.Context, c *domain.Course) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO courses (identifier, name, description, channel, language, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (identifier) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			channel = EXCLUDED.channel,
			language = EXCLUDED.language,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, c.Identifier, c.Name, c.Description, c.Channel, c.Language, c.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting course: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) UpsertEnrollment(ctx context.Context, e *domain.CourseEnrollment) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO course_enrollments (user_id, course_id, status, progress)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			status = EXCLUDED.status,
			progress = EXCLUDED.progress,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, e.UserID, e.CourseID, e.Status, e.Progress).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting enrollment: %w", err)
	}
	return created, nil
}

// UpdateEnrollmentStatus mutates only the status of an existing enrollment.
// A status update for an unknown enrollment creates the row, since producers
// do not guarantee the enrollment event arrives first.
func (s *PostgresStore) UpdateEnrollmentStatus(ctx context.Context, userID, courseID, status string) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO course_enrollments (user_id, course_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, userID, courseID, status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("updating enrollment status: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) UpsertQuestionSet(ctx context.Context, q *domain.QuestionSet) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO question_sets (identifier, name, subject, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (identifier) DO UPDATE SET
			name = EXCLUDED.name,
			subject = EXCLUDED.subject,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, q.Identifier, q.Name, q.Subject, q.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting question set: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) UpsertContentTracking(ctx context.Context, t *domain.ContentTracking) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO content_tracking (user_id, course_id, content_id, status, progress)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, course_id, content_id) DO UPDATE SET
			status = EXCLUDED.status,
			progress = EXCLUDED.progress,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, t.UserID, t.CourseID, t.ContentID, t.Status, t.Progress).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting content tracking: %w", err)
	}
	return created, nil
}
