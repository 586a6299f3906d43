package domain

import "time"

const TaskStatusCompleted = "completed"

// Project is an improvement project instantiated from a template.
type Project struct {
	TemplateID  string    `json:"template_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectTask is one task inside a user's project instance.
type ProjectTask struct {
	ProjectID string    `json:"project_id"`
	TaskID    string    `json:"task_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskTracking materializes one completed-task observation. One row per
// (project, user, task) tuple; redeliveries must never duplicate it.
type TaskTracking struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	TaskID    string    `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}
