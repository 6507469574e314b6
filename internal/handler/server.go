// Package handler implements the HTTP handlers for the HOS daily-log API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, log.go, stats.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MwangiSara/ELD-Trucking-System/internal/domain"
	"github.com/MwangiSara/ELD-Trucking-System/internal/service"
	"github.com/MwangiSara/ELD-Trucking-System/internal/timeline"
	"github.com/MwangiSara/ELD-Trucking-System/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// LogServicer defines the business operations the daily-log handlers depend on.
// BuildView is served directly per request: each HTTP request already owns a
// context that dies with its connection, so concurrent view requests from
// independent clients never interfere. service.ViewLoader is for callers that
// own a single display slot, not for a shared server-wide route.
type LogServicer interface {
	CreateLog(ctx context.Context, log domain.DailyLog) (domain.DailyLog, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error)
	ListEvents(ctx context.Context, logID uuid.UUID) ([]domain.DutyEvent, error)
	SubmitEvent(ctx context.Context, event domain.DutyEvent) (domain.DutyEvent, error)
	BuildView(ctx context.Context, logID uuid.UUID, resolution int) (timeline.DailyLogView, error)
	Reconcile(ctx context.Context, logID uuid.UUID) ([]timeline.Mismatch, error)
}

// StatsServicer defines the driver-statistics operations the stats handler
// depends on.
type StatsServicer interface {
	ForDriver(ctx context.Context, driverName string) (service.DriverStats, error)
}

// Server holds the service dependencies for every API endpoint.
// Wire it in main.go via Routes().
type Server struct {
	trips TripServicer
	logs  LogServicer
	stats StatsServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, logs LogServicer, stats StatsServicer) *Server {
	return &Server{trips: trips, logs: logs, stats: stats}
}

// Routes returns the chi router with every API route registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.createTrip)
			r.Get("/", s.listTrips)
			r.Get("/{tripID}", s.getTrip)
			r.Get("/{tripID}/logs", s.listLogs)
			r.Post("/{tripID}/logs", s.createLog)
		})
		r.Route("/logs/{logID}", func(r chi.Router) {
			r.Get("/events", s.listEvents)
			r.Post("/events", s.createEvent)
			r.Get("/view", s.getView)
			r.Get("/reconcile", s.reconcileLog)
		})
		r.Get("/drivers/{driverName}/stats", s.getDriverStats)
	})

	return r
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}
