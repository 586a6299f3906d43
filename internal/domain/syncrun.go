package domain

import "time"

// SyncRun is one recorded execution of the scheduled sync job.
type SyncRun struct {
	ID                    string    `json:"id"`
	Trigger               string    `json:"trigger"` // "schedule" or "manual"
	Status                string    `json:"status"`  // "success" or "failed"
	CoursesProcessed      int       `json:"courses_processed"`
	CoursesFailed         int       `json:"courses_failed"`
	QuestionSetsProcessed int       `json:"question_sets_processed"`
	QuestionSetsFailed    int       `json:"question_sets_failed"`
	Error                 string    `json:"error,omitempty"`
	DurationMs            int64     `json:"duration_ms"`
	StartedAt             time.Time `json:"started_at"`
}
