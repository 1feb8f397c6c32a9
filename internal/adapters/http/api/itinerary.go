package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
)

// itineraryResponse is the body of both itinerary endpoints.
type itineraryResponse struct {
	Status    string       `json:"status"`
	Itinerary []types.Stop `json:"itinerary,omitempty"`
	Message   string       `json:"message,omitempty"`
}

func newItineraryResponse(res itinerary.Result) itineraryResponse {
	if res.IsEmpty() {
		return itineraryResponse{Status: res.Kind().String(), Message: res.Message()}
	}
	return itineraryResponse{Status: res.Kind().String(), Itinerary: types.Stops(res.Concerts())}
}

// ItineraryHandler handles itinerary requests.
type ItineraryHandler struct {
	deps ItineraryDependencies
}

// NewItineraryHandler creates a new itinerary handler.
func NewItineraryHandler(deps ItineraryDependencies) *ItineraryHandler {
	return &ItineraryHandler{deps: deps}
}

// HandleItinerary serves GET /itinerary for the configured dataset and
// POST /itinerary for a JSON array of concerts.
func (h *ItineraryHandler) HandleItinerary(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *ItineraryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.SampleItinerary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, newItineraryResponse(res))
}

func (h *ItineraryHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_itinerary"

	var concerts []model.Concert
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&concerts); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Itinerary(r.Context(), concerts)
	if errors.Is(err, itinerary.ErrInvalidConcert) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, newItineraryResponse(res))
}
