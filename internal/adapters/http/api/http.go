// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ItineraryDependencies
	ProgressDependencies
	TestRunDependencies
}

// ItineraryDependencies builds itineraries.
type ItineraryDependencies interface {
	Itinerary(ctx context.Context, concerts []model.Concert) (itinerary.Result, error)
	SampleItinerary(ctx context.Context) (itinerary.Result, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	itineraryHandler *ItineraryHandler
	progressHandler  *ProgressHandler
	testRunsHandler  *TestRunsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		itineraryHandler: NewItineraryHandler(deps),
		progressHandler:  NewProgressHandler(deps),
		testRunsHandler:  NewTestRunsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/itinerary", MetricsMiddleware(s.itineraryHandler.HandleItinerary, "itinerary"))
	mux.HandleFunc("/progress", MetricsMiddleware(s.progressHandler.HandleGetProgress, "progress"))
	mux.HandleFunc("/testruns", MetricsMiddleware(s.testRunsHandler.HandlePostTestRun, "testruns"))
	mux.HandleFunc("/testruns/", MetricsMiddleware(s.testRunsHandler.HandleGetTestRun, "testrun"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
