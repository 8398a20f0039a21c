package httpx

import (
	"net/http"

	"github.com/factsuniv/Pk4/internal/data"
	"github.com/factsuniv/Pk4/internal/domain/model"
)

// ParkerHandlers provides HTTP handlers for Parker registry operations.
type ParkerHandlers struct {
	Registry *data.ParkerRegistry
}

// Register handles HTTP requests to register a Parker in the matching pool.
func (h *ParkerHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var parker model.Parker
	if !DecodeJSON(w, r, &parker) {
		return
	}

	registered, err := h.Registry.Register(r.Context(), parker)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, registered)
}

// presenceRequest carries an availability update.
type presenceRequest struct {
	IsOnline bool               `json:"isOnline"`
	Location *model.Coordinates `json:"location,omitempty"`
}

// SetOnline handles HTTP requests to flip a Parker's availability.
func (h *ParkerHandlers) SetOnline(w http.ResponseWriter, r *http.Request) {
	var req presenceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	parker, err := h.Registry.SetOnline(r.Context(), r.PathValue("id"), req.IsOnline, req.Location)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, parker)
}

// Get handles HTTP requests for a single Parker record.
func (h *ParkerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	parker, err := h.Registry.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, parker)
}

// ListOnline handles HTTP requests for all currently online Parkers.
func (h *ParkerHandlers) ListOnline(w http.ResponseWriter, r *http.Request) {
	parkers, err := h.Registry.ListOnline(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if parkers == nil {
		parkers = []model.Parker{}
	}

	WriteJSON(w, http.StatusOK, parkers)
}
