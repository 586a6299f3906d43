// Package router dispatches inbound bus messages to domain handlers. The
// dispatch table is built once at startup; routing itself is a map lookup,
// not a branch ladder.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/handler"
)

// HandlerFunc processes the data portion of one envelope.
type HandlerFunc func(ctx context.Context, data json.RawMessage) (*handler.Result, error)

type routeKey struct {
	topic     string
	eventType string
}

type Router struct {
	routes    map[routeKey]HandlerFunc
	overrides map[string]HandlerFunc
	logger    *slog.Logger
}

func New(logger *slog.Logger) *Router {
	return &Router{
		routes:    make(map[routeKey]HandlerFunc),
		overrides: make(map[string]HandlerFunc),
		logger:    logger,
	}
}

// Handle registers a handler for one (topic, eventType) pair.
func (r *Router) Handle(topic, eventType string, fn HandlerFunc) {
	r.routes[routeKey{topic, eventType}] = fn
}

// HandleOverride registers a handler for an event type regardless of the
// topic it arrives on. Some producers emit these event types on topics not
// dedicated to them, so overrides are consulted before the topic table.
func (r *Router) HandleOverride(eventType string, fn HandlerFunc) {
	r.overrides[eventType] = fn
}

// Route dispatches one raw message. It never returns an error: a malformed
// or unroutable message must not block consumption of the ones behind it,
// so every failure ends here with a log entry.
func (r *Router) Route(ctx context.Context, topic string, raw []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		r.logger.Warn("dropping undecodable message", "topic", topic, "error", err)
		return
	}
	if env.EventType == "" || len(env.Data) == 0 {
		r.logger.Warn("dropping incomplete envelope",
			"topic", topic, "event_type", env.EventType)
		return
	}

	fn, ok := r.overrides[env.EventType]
	if !ok {
		fn, ok = r.routes[routeKey{topic, env.EventType}]
	}
	if !ok {
		r.logger.Warn("no route for message",
			"topic", topic, "event_type", env.EventType)
		return
	}

	r.logger.Debug("routing message", "topic", topic, "event_type", env.EventType)

	result, err := fn(ctx, env.Data)
	if err != nil {
		var ve *domain.ValidationError
		var te *domain.TransformError
		if errors.As(err, &ve) || errors.As(err, &te) {
			r.logger.Warn("skipping bad message",
				"topic", topic, "event_type", env.EventType, "error", err)
			return
		}
		r.logger.Error("message processing failed",
			"topic", topic, "event_type", env.EventType, "error", err)
		return
	}

	r.logger.Info("message processed",
		"topic", topic,
		"event_type", env.EventType,
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
}

// Handlers groups the domain handlers the default table dispatches to.
type Handlers struct {
	Users       *handler.UserHandler
	Courses     *handler.CourseHandler
	Content     *handler.ContentHandler
	Attendance  *handler.AttendanceHandler
	Assessments *handler.AssessmentHandler
	Calendar    *handler.CalendarHandler
	Projects    *handler.ProjectHandler
}

// NewDefault builds the full dispatch table for every consumed topic.
func NewDefault(h Handlers, logger *slog.Logger) *Router {
	r := New(logger)

	// Producers emit these two on arbitrary topics.
	r.HandleOverride(domain.CourseEnrollmentCreated, h.Courses.HandleEnrollmentUpsert)
	r.HandleOverride(domain.ContentTrackingCreated, h.Content.HandleTrackingUpsert)

	r.Handle(domain.TopicUser, domain.UserCreated, h.Users.HandleUserUpsert)
	r.Handle(domain.TopicUser, domain.UserUpdated, h.Users.HandleUserUpsert)
	r.Handle(domain.TopicUser, domain.UserDeleted, h.Users.HandleUserDelete)
	r.Handle(domain.TopicUser, domain.CohortCreated, h.Users.HandleCohortUpsert)
	r.Handle(domain.TopicUser, domain.CohortUpdated, h.Users.HandleCohortUpsert)
	r.Handle(domain.TopicUser, domain.CohortDeleted, h.Users.HandleCohortDelete)

	r.Handle(domain.TopicEvent, domain.EventCreated, h.Calendar.HandleUpsert)
	r.Handle(domain.TopicEvent, domain.EventUpdated, h.Calendar.HandleUpsert)
	r.Handle(domain.TopicEvent, domain.EventDeleted, h.Calendar.HandleDelete)

	r.Handle(domain.TopicAttendance, domain.AttendanceCreated, h.Attendance.HandleUpsert)
	r.Handle(domain.TopicAttendance, domain.AttendanceUpdated, h.Attendance.HandleUpsert)
	r.Handle(domain.TopicAttendance, domain.AttendanceDeleted, h.Attendance.HandleDelete)

	r.Handle(domain.TopicCourse, domain.CourseStatusUpdated, h.Courses.HandleStatusUpdate)

	r.Handle(domain.TopicAssessment, domain.AssessmentCreated, h.Assessments.HandleUpsert)
	r.Handle(domain.TopicAssessment, domain.AssessmentUpdated, h.Assessments.HandleUpsert)
	r.Handle(domain.TopicAssessment, domain.AssessmentDeleted, h.Assessments.HandleDelete)

	r.Handle(domain.TopicProject, domain.ProjectCreated, h.Projects.HandleProjectUpsert)
	r.Handle(domain.TopicProject, domain.ProjectUpdated, h.Projects.HandleProjectUpsert)
	r.Handle(domain.TopicProject, domain.ProjectTasksSync, h.Projects.HandleProjectSync)

	return r
}
