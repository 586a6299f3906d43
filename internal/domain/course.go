package domain

import "time"

// Course is a catalog entry pulled from the external content API.
type Course struct {
	Identifier  string    `json:"identifier"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Channel     string    `json:"channel,omitempty"`
	Language    string    `json:"language,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CourseEnrollment links a user to a course. The (user, course) pair is the
// natural key; COURSE_STATUS_UPDATED events mutate Status in place.
type CourseEnrollment struct {
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuestionSet is an assessment bank entry pulled from the external content API.
type QuestionSet struct {
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Subject    string    `json:"subject,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContentTracking records one user's consumption of one piece of content
// inside a course.
type ContentTracking struct {
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	ContentID string    `json:"content_id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
