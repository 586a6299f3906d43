package domain

import (
	"encoding/json"
)

// Topics consumed from the event bus.
const (
	TopicUser       = "user-topic"
	TopicEvent      = "event-topic"
	TopicAttendance = "attendance-topic"
	TopicCourse     = "course-topic"
	TopicAssessment = "assessment-topic"
	TopicProject    = "project-topic"
)

// Event types per entity family. The vocabulary is closed: anything else is
// logged and dropped at the router.
const (
	UserCreated       = "USER_CREATED"
	UserUpdated       = "USER_UPDATED"
	UserDeleted       = "USER_DELETED"
	CohortCreated     = "COHORT_CREATED"
	CohortUpdated     = "COHORT_UPDATED"
	CohortDeleted     = "COHORT_DELETED"
	EventCreated      = "EVENT_CREATED"
	EventUpdated      = "EVENT_UPDATED"
	EventDeleted      = "EVENT_DELETED"
	AttendanceCreated = "ATTENDANCE_CREATED"
	AttendanceUpdated = "ATTENDANCE_UPDATED"
	AttendanceDeleted = "ATTENDANCE_DELETED"
	AssessmentCreated = "ASSESSMENT_CREATED"
	AssessmentUpdated = "ASSESSMENT_UPDATED"
	AssessmentDeleted = "ASSESSMENT_DELETED"

	CourseEnrollmentCreated = "COURSE_ENROLLMENT_CREATED"
	CourseStatusUpdated     = "COURSE_STATUS_UPDATED"
	ContentTrackingCreated  = "CONTENT_TRACKING_CREATED"

	ProjectCreated   = "PROJECT_CREATED"
	ProjectUpdated   = "PROJECT_UPDATED"
	ProjectTasksSync = "PROJECT_TASKS_SYNC"
)

// Envelope is the wire format for one inbound bus message. The topic is not
// part of the body; it is carried by the queue the message arrived on.
type Envelope struct {
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}
