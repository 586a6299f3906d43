package domain

import "time"

type Attendance struct {
	Identifier string    `json:"identifier"`
	UserID     string    `json:"user_id"`
	EventID    string    `json:"event_id,omitempty"`
	Date       string    `json:"date,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Assessment struct {
	Identifier string    `json:"identifier"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id,omitempty"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CalendarEvent is a scheduled session (webinar, class, meetup) published on
// the event topic.
type CalendarEvent struct {
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	StartTime  string    `json:"start_time,omitempty"`
	EndTime    string    `json:"end_time,omitempty"`
	Location   string    `json:"location,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
