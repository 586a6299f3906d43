package store

import (
	"context"
	"fmt"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

// UpsertUser inserts the user or updates it in place, keyed by identifier.
// Returns true if a new row was created. xmax = 0 holds only for rows
// inserted by the current transaction, which distinguishes insert from update
// within a single round trip.
func (s *PostgresStore) UpsertUser(ctx context.Context, u *domain.User) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (identifier, username, name, email, phone, state, district, school, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (identifier) DO UPDATE SET
			username = EXCLUDED.username,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			state = EXCLUDED.state,
			district = EXCLUDED.district,
			school = EXCLUDED.school,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, u.Identifier, u.Username, u.Name, u.Email, u.Phone, u.State, u.District, u.School, u.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting user: %w", err)
	}
	return created, nil
}

// DeleteUser removes the row by natural key. Returns true if a row existed.
func (s *PostgresStore) DeleteUser(ctx context.Context, identifier string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE identifier = $1`, identifier)
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) UpsertCohort(ctx context.Context, c *domain.Cohort) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO cohorts (identifier, name, type, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (identifier) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, c.Identifier, c.Name, c.Type, c.StartDate, c.EndDate, c.Status).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upserting cohort: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) DeleteCohort(ctx context.Context, identifier string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cohorts WHERE identifier = $1`, identifier)
	if err != nil {
		return false, fmt.Errorf("deleting cohort: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
