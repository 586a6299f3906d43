package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/priyank-dev/edu-sync-service/internal/store"
	syncjob "github.com/priyank-dev/edu-sync-service/internal/sync"
)

type SyncHandler struct {
	job   *syncjob.Job
	store *store.PostgresStore
}

func NewSyncHandler(job *syncjob.Job, s *store.PostgresStore) *SyncHandler {
	return &SyncHandler{job: job, store: s}
}

// Status returns a snapshot of the job's counters.
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.job.Status())
}

// Trigger starts a manual run. The run executes in the background; if one
// is already in flight the trigger is rejected.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if h.job.Status().IsRunning {
		respondError(w, http.StatusConflict, "sync run already in progress")
		return
	}

	// Detached from the request context: an operator disconnect must not
	// cancel a run that has started.
	go h.job.TriggerManual(context.Background())

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "triggered"})
}

// Runs lists recent sync executions.
func (h *SyncHandler) Runs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := h.store.ListSyncRuns(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list sync runs")
		return
	}

	respondJSON(w, http.StatusOK, runs)
}

// Health reports job and dependency health. Always 200; degraded state is
// in the payload.
func (h *SyncHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.job.HealthCheck(r.Context()))
}
