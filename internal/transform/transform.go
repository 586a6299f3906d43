// Package transform maps raw producer payloads into canonical entities.
// Functions here are pure: no storage, no logging. Parse* decodes a raw
// payload and To* builds the canonical record; required-field validation
// is the caller's job so that "unparseable" and "incomplete" stay distinct
// failure kinds.
package transform

import (
	"encoding/json"
	"strings"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

type UserPayload struct {
	ID         string `json:"_id"`
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	State      string `json:"state"`
	District   string `json:"district"`
	School     string `json:"school"`
	Status     string `json:"status"`
}

// Key returns the natural identifier, preferring the explicit identifier
// over the producer's internal _id.
func (p *UserPayload) Key() string { return pick(p.Identifier, p.ID) }

func ParseUser(data json.RawMessage) (*UserPayload, error) {
	var p UserPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "user", Err: err}
	}
	return &p, nil
}

func ToUser(p *UserPayload) *domain.User {
	return &domain.User{
		Identifier: p.Key(),
		Username:   p.Username,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		State:      p.State,
		District:   p.District,
		School:     p.School,
		Status:     pick(p.Status, "active"),
	}
}

type CohortPayload struct {
	ID         string `json:"_id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
}

func (p *CohortPayload) Key() string { return pick(p.Identifier, p.ID) }

func ParseCohort(data json.RawMessage) (*CohortPayload, error) {
	var p CohortPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "cohort", Err: err}
	}
	return &p, nil
}

func ToCohort(p *CohortPayload) *domain.Cohort {
	return &domain.Cohort{
		Identifier: p.Key(),
		Name:       p.Name,
		Type:       p.Type,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Status:     pick(p.Status, "active"),
	}
}

type EnrollmentPayload struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

func ParseEnrollment(data json.RawMessage) (*EnrollmentPayload, error) {
	var p EnrollmentPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "enrollment", Err: err}
	}
	return &p, nil
}

func ToEnrollment(p *EnrollmentPayload) *domain.CourseEnrollment {
	return &domain.CourseEnrollment{
		UserID:   p.UserID,
		CourseID: p.CourseID,
		Status:   pick(p.Status, "enrolled"),
		Progress: p.Progress,
	}
}

type ContentTrackingPayload struct {
	UserID    string `json:"userId"`
	CourseID  string `json:"courseId"`
	ContentID string `json:"contentId"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
}

func ParseContentTracking(data json.RawMessage) (*ContentTrackingPayload, error) {
	var p ContentTrackingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "content-tracking", Err: err}
	}
	return &p, nil
}

func ToContentTracking(p *ContentTrackingPayload) *domain.ContentTracking {
	return &domain.ContentTracking{
		UserID:    p.UserID,
		CourseID:  p.CourseID,
		ContentID: p.ContentID,
		Status:    pick(p.Status, "started"),
		Progress:  p.Progress,
	}
}

type AttendancePayload struct {
	ID         string `json:"_id"`
	Identifier string `json:"identifier"`
	UserID     string `json:"userId"`
	EventID    string `json:"eventId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (p *AttendancePayload) Key() string { return pick(p.Identifier, p.ID) }

func ParseAttendance(data json.RawMessage) (*AttendancePayload, error) {
	var p AttendancePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "attendance", Err: err}
	}
	return &p, nil
}

func ToAttendance(p *AttendancePayload) *domain.Attendance {
	return &domain.Attendance{
		Identifier: p.Key(),
		UserID:     p.UserID,
		EventID:    p.EventID,
		Date:       p.Date,
		Status:     pick(p.Status, "present"),
	}
}

type AssessmentPayload struct {
	ID         string  `json:"_id"`
	Identifier string  `json:"identifier"`
	UserID     string  `json:"userId"`
	CourseID   string  `json:"courseId"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"maxScore"`
	Status     string  `json:"status"`
}

func (p *AssessmentPayload) Key() string { return pick(p.Identifier, p.ID) }

func ParseAssessment(data json.RawMessage) (*AssessmentPayload, error) {
	var p AssessmentPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "assessment", Err: err}
	}
	return &p, nil
}

func ToAssessment(p *AssessmentPayload) *domain.Assessment {
	return &domain.Assessment{
		Identifier: p.Key(),
		UserID:     p.UserID,
		CourseID:   p.CourseID,
		Score:      p.Score,
		MaxScore:   p.MaxScore,
		Status:     pick(p.Status, "submitted"),
	}
}

type CalendarEventPayload struct {
	ID         string `json:"_id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Location   string `json:"location"`
	Status     string `json:"status"`
}

func (p *CalendarEventPayload) Key() string { return pick(p.Identifier, p.ID) }

func ParseCalendarEvent(data json.RawMessage) (*CalendarEventPayload, error) {
	var p CalendarEventPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "calendar-event", Err: err}
	}
	return &p, nil
}

func ToCalendarEvent(p *CalendarEventPayload) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		Identifier: p.Key(),
		Title:      p.Title,
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		Location:   p.Location,
		Status:     pick(p.Status, "scheduled"),
	}
}

type ProjectPayload struct {
	ProjectTemplate struct {
		ProjectTemplateID string `json:"projectTemplateId"`
		Title             string `json:"title"`
		Description       string `json:"description"`
		Category          string `json:"category"`
	} `json:"projectTemplate"`
	Status string `json:"status"`
}

func ParseProject(data json.RawMessage) (*ProjectPayload, error) {
	var p ProjectPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "project", Err: err}
	}
	return &p, nil
}

func ToProject(p *ProjectPayload) *domain.Project {
	return &domain.Project{
		TemplateID:  p.ProjectTemplate.ProjectTemplateID,
		Name:        p.ProjectTemplate.Title,
		Description: p.ProjectTemplate.Description,
		Category:    p.ProjectTemplate.Category,
		Status:      pick(p.Status, "started"),
	}
}

type ProjectSyncPayload struct {
	ID         string            `json:"_id"`
	SolutionID string            `json:"solutionId"`
	UserID     string            `json:"userId"`
	Tasks      []TaskSyncPayload `json:"tasks"`
}

type TaskSyncPayload struct {
	ID     string `json:"_id"`
	TaskID string `json:"taskId"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (p *TaskSyncPayload) Key() string { return pick(p.TaskID, p.ID) }

func ParseProjectSync(data json.RawMessage) (*ProjectSyncPayload, error) {
	var p ProjectSyncPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "project-sync", Err: err}
	}
	return &p, nil
}

// ProjectIDFromSolution derives the stable project identifier from the
// solution reference carried on sync messages.
func ProjectIDFromSolution(solutionID string) string {
	return strings.TrimPrefix(solutionID, "solution:")
}

// CompletedTasks filters a sync payload down to the tasks that produce
// tracking rows. Tasks in any other status are silently excluded.
func CompletedTasks(tasks []TaskSyncPayload) []TaskSyncPayload {
	var completed []TaskSyncPayload
	for _, t := range tasks {
		if t.Status == domain.TaskStatusCompleted {
			completed = append(completed, t)
		}
	}
	return completed
}

// CoursePayload is one item of the external content API's course collection.
type CoursePayload struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Channel     string `json:"channel"`
	Language    string `json:"language"`
	Status      string `json:"status"`
}

func ParseCourse(data json.RawMessage) (*CoursePayload, error) {
	var p CoursePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "course", Err: err}
	}
	return &p, nil
}

func ToCourse(p *CoursePayload) *domain.Course {
	return &domain.Course{
		Identifier:  p.Identifier,
		Name:        p.Name,
		Description: p.Description,
		Channel:     p.Channel,
		Language:    p.Language,
		Status:      pick(p.Status, "live"),
	}
}

// QuestionSetPayload is one item of the external content API's question-set
// collection.
type QuestionSetPayload struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Status     string `json:"status"`
}

func ParseQuestionSet(data json.RawMessage) (*QuestionSetPayload, error) {
	var p QuestionSetPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &domain.TransformError{Entity: "question-set", Err: err}
	}
	return &p, nil
}

func ToQuestionSet(p *QuestionSetPayload) *domain.QuestionSet {
	return &domain.QuestionSet{
		Identifier: p.Identifier,
		Name:       p.Name,
		Subject:    p.Subject,
		Status:     pick(p.Status, "live"),
	}
}

func pick(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}
