package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/victorezeilo/TDD-Prompt-Engineering/internal/app"
)

// TestRunDependencies queues and reports background test runs.
type TestRunDependencies interface {
	SubmitTestRun(ctx context.Context) (service.JobStatus, error)
	TestRunJob(ctx context.Context, id string) (service.JobStatus, error)
}

// TestRunsHandler handles test run requests.
type TestRunsHandler struct {
	deps TestRunDependencies
}

// NewTestRunsHandler creates a new test runs handler.
func NewTestRunsHandler(deps TestRunDependencies) *TestRunsHandler {
	return &TestRunsHandler{deps: deps}
}

// HandlePostTestRun handles POST /testruns requests.
func (h *TestRunsHandler) HandlePostTestRun(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_testrun"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	st, err := h.deps.SubmitTestRun(r.Context())
	switch {
	case errors.Is(err, service.ErrBusy):
		writeError(w, http.StatusTooManyRequests, "busy", WrapKind(op, ErrBusy, err))
		return
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}

	w.Header().Set("Location", "/testruns/"+st.ID)
	writeJSON(w, http.StatusAccepted, st)
}

// HandleGetTestRun handles GET /testruns/{id} requests.
func (h *TestRunsHandler) HandleGetTestRun(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_testrun"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/testruns/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	st, err := h.deps.TestRunJob(r.Context(), id)
	if errors.Is(err, service.ErrNoJob) {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
