package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/priyank-dev/edu-sync-service/internal/store"
	syncjob "github.com/priyank-dev/edu-sync-service/internal/sync"
	ws "github.com/priyank-dev/edu-sync-service/internal/websocket"
)

// NewRouter creates and configures the operational HTTP surface.
func NewRouter(job *syncjob.Job, pgStore *store.PostgresStore, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	syncHandler := NewSyncHandler(job, pgStore)

	r.Get("/ws", hub.HandleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", syncHandler.Health)

		r.Route("/sync", func(r chi.Router) {
			r.Get("/status", syncHandler.Status)
			r.Post("/trigger", syncHandler.Trigger)
			r.Get("/runs", syncHandler.Runs)
		})
	})

	return r
}
