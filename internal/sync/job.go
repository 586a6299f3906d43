// Package sync implements the scheduled reconciliation job against the
// external content provider.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	gosync "sync"
	"time"

	"github.com/google/uuid"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
	"github.com/priyank-dev/edu-sync-service/internal/handler"
	ws "github.com/priyank-dev/edu-sync-service/internal/websocket"
)

type contentAPI interface {
	FetchCourseData(ctx context.Context) ([]json.RawMessage, error)
	FetchQuestionSetData(ctx context.Context) ([]json.RawMessage, error)
	TestConnection(ctx context.Context) bool
}

type itemHandler func(ctx context.Context, data json.RawMessage) (*handler.Result, error)

type runStore interface {
	RecordSyncRun(ctx context.Context, r *domain.SyncRun) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Status is a snapshot of the job's counters. Callers always get a copy,
// never a reference into the job's own state.
type Status struct {
	IsRunning            bool       `json:"is_running"`
	LastExecution        *time.Time `json:"last_execution,omitempty"`
	LastSuccess          *time.Time `json:"last_success,omitempty"`
	LastError            string     `json:"last_error,omitempty"`
	TotalExecutions      int        `json:"total_executions"`
	SuccessfulExecutions int        `json:"successful_executions"`
	FailedExecutions     int        `json:"failed_executions"`
}

// Health is the never-failing health probe result.
type Health struct {
	Status  string        `json:"status"` // "healthy" or "unhealthy"
	Details HealthDetails `json:"details"`
}

type HealthDetails struct {
	APIConnected      bool   `json:"api_connected"`
	DatabaseConnected bool   `json:"database_connected"`
	CacheConnected    bool   `json:"cache_connected"`
	LastRun           Status `json:"last_run"`
}

// Job pulls the full course and question-set collections from the content
// provider and drives every item through the same handler upsert path the
// bus uses. At most one run is active at a time; the consumption path is
// not serialized with it, and correctness rests on the gateway's per-key
// upsert semantics.
type Job struct {
	api               contentAPI
	upsertCourse      itemHandler
	upsertQuestionSet itemHandler
	runs              runStore
	db                pinger
	cache             pinger
	feed              *ws.Hub
	logger            *slog.Logger

	mu     gosync.Mutex
	status Status
}

func NewJob(api contentAPI, courses *handler.CourseHandler, assessments *handler.AssessmentHandler, runs runStore, db, cache pinger, feed *ws.Hub, logger *slog.Logger) *Job {
	return &Job{
		api:               api,
		upsertCourse:      courses.HandleCourseUpsert,
		upsertQuestionSet: assessments.HandleQuestionSetUpsert,
		runs:              runs,
		db:                db,
		cache:             cache,
		feed:              feed,
		logger:            logger,
	}
}

// Run executes one guarded sync pass. If a run is already in flight the
// trigger is a no-op: no counters move, only a skip is logged. Returns
// whether the run actually started.
func (j *Job) Run(ctx context.Context, trigger string) bool {
	started := time.Now()

	j.mu.Lock()
	if j.status.IsRunning {
		j.mu.Unlock()
		j.logger.Info("sync run already in progress, skipping trigger", "trigger", trigger)
		return false
	}
	j.status.IsRunning = true
	j.status.LastExecution = &started
	j.status.TotalExecutions++
	j.mu.Unlock()

	runID := uuid.NewString()
	j.logger.Info("sync run started", "run_id", runID, "trigger", trigger)
	j.broadcast(ws.SyncActivity{Type: "run_started", RunID: runID, Timestamp: started})

	run := &domain.SyncRun{
		ID:        runID,
		Trigger:   trigger,
		StartedAt: started,
	}

	var pullErrs []string

	// The two sub-pulls are independent failure domains: a transport
	// failure on one does not stop the other.
	run.CoursesProcessed, run.CoursesFailed = j.subPull(ctx, runID, "courses", j.api.FetchCourseData, j.upsertCourse, &pullErrs)
	run.QuestionSetsProcessed, run.QuestionSetsFailed = j.subPull(ctx, runID, "question-sets", j.api.FetchQuestionSetData, j.upsertQuestionSet, &pullErrs)

	run.DurationMs = time.Since(started).Milliseconds()

	j.mu.Lock()
	j.status.IsRunning = false
	if len(pullErrs) == 0 {
		finished := time.Now()
		j.status.LastSuccess = &finished
		j.status.SuccessfulExecutions++
		run.Status = "success"
	} else {
		j.status.LastError = strings.Join(pullErrs, "; ")
		j.status.FailedExecutions++
		run.Status = "failed"
		run.Error = j.status.LastError
	}
	j.mu.Unlock()

	if err := j.runs.RecordSyncRun(ctx, run); err != nil {
		j.logger.Error("failed to record sync run", "run_id", runID, "error", err)
	}

	if run.Status == "success" {
		j.logger.Info("sync run completed",
			"run_id", runID,
			"courses_processed", run.CoursesProcessed,
			"question_sets_processed", run.QuestionSetsProcessed,
			"duration_ms", run.DurationMs,
		)
		j.broadcast(ws.SyncActivity{
			Type:      "run_completed",
			RunID:     runID,
			Processed: run.CoursesProcessed + run.QuestionSetsProcessed,
			Failed:    run.CoursesFailed + run.QuestionSetsFailed,
			Timestamp: time.Now(),
		})
	} else {
		j.logger.Error("sync run failed", "run_id", runID, "error", run.Error)
		j.broadcast(ws.SyncActivity{
			Type:      "run_failed",
			RunID:     runID,
			Error:     run.Error,
			Timestamp: time.Now(),
		})
	}

	return true
}

// subPull fetches one full collection and upserts every item. A bad item is
// logged and skipped; only a transport failure aborts the sub-pull, and it
// is appended to pullErrs rather than propagated.
func (j *Job) subPull(ctx context.Context, runID, source string, fetch func(context.Context) ([]json.RawMessage, error), upsert itemHandler, pullErrs *[]string) (processed, failed int) {
	items, err := fetch(ctx)
	if err != nil {
		j.logger.Error("sub-pull fetch failed", "run_id", runID, "source", source, "error", err)
		*pullErrs = append(*pullErrs, err.Error())
		return 0, 0
	}

	if len(items) == 0 {
		j.logger.Info("sub-pull returned no items", "run_id", runID, "source", source)
		return 0, 0
	}

	for i, item := range items {
		if _, err := upsert(ctx, item); err != nil {
			failed++
			var ve *domain.ValidationError
			var te *domain.TransformError
			if errors.As(err, &ve) || errors.As(err, &te) {
				j.logger.Warn("skipping bad item", "run_id", runID, "source", source, "item", i, "error", err)
			} else {
				j.logger.Error("item upsert failed", "run_id", runID, "source", source, "item", i, "error", err)
			}
			continue
		}
		processed++
	}

	j.logger.Info("sub-pull completed",
		"run_id", runID, "source", source, "processed", processed, "failed", failed)
	j.broadcast(ws.SyncActivity{
		Type:      "sub_pull_completed",
		RunID:     runID,
		Source:    source,
		Processed: processed,
		Failed:    failed,
		Timestamp: time.Now(),
	})

	return processed, failed
}

// TriggerManual invokes the same guarded run the schedule uses.
func (j *Job) TriggerManual(ctx context.Context) bool {
	return j.Run(ctx, "manual")
}

// Status returns a snapshot of the job's counters.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// HealthCheck probes the content API, postgres, and redis. It never fails;
// unreachable dependencies are reported in the payload.
func (j *Job) HealthCheck(ctx context.Context) Health {
	details := HealthDetails{
		APIConnected: j.api.TestConnection(ctx),
		LastRun:      j.Status(),
	}
	if j.db != nil {
		details.DatabaseConnected = j.db.Ping(ctx) == nil
	}
	if j.cache != nil {
		details.CacheConnected = j.cache.Ping(ctx) == nil
	}

	status := "healthy"
	if !details.APIConnected || !details.DatabaseConnected || !details.CacheConnected {
		status = "unhealthy"
	}

	return Health{Status: status, Details: details}
}

func (j *Job) broadcast(activity ws.SyncActivity) {
	if j.feed != nil {
		j.feed.Broadcast(activity)
	}
}
