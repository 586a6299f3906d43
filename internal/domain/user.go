package domain

import "time"

type User struct {
	Identifier string    `json:"identifier"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	State      string    `json:"state,omitempty"`
	District   string    `json:"district,omitempty"`
	School     string    `json:"school,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Cohort struct {
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Type       string    `json:"type,omitempty"`
	StartDate  string    `json:"start_date,omitempty"`
	EndDate    string    `json:"end_date,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
