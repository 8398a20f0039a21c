package httpx

import (
	"net/http"
	"strconv"

	"github.com/factsuniv/Pk4/internal/directory"
	"github.com/factsuniv/Pk4/internal/domain/model"
)

// DirectoryHandlers provides HTTP handlers for business directory lookups.
type DirectoryHandlers struct {
	Directory *directory.Service
}

// Search handles HTTP requests to search the business catalogue.
func (h *DirectoryHandlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results := h.Directory.Search(q.Get("q"), directory.SearchOptions{
		Category: q.Get("category"),
		Limit:    parseIntQuery(r, "limit", 0),
	})
	if results == nil {
		results = []directory.Business{}
	}

	WriteJSON(w, http.StatusOK, results)
}

// Suggest handles HTTP requests for autocomplete suggestions.
func (h *DirectoryHandlers) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions := h.Directory.Suggest(r.URL.Query().Get("q"), parseIntQuery(r, "limit", 0))
	if suggestions == nil {
		suggestions = []string{}
	}

	WriteJSON(w, http.StatusOK, suggestions)
}

// Popular handles HTTP requests for the highest-demand businesses.
func (h *DirectoryHandlers) Popular(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Directory.Popular(parseIntQuery(r, "limit", 0)))
}

// Nearby handles HTTP requests for businesses near a coordinate.
func (h *DirectoryHandlers) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: errInvalidCoordinates})
		return
	}

	radius, _ := strconv.ParseFloat(q.Get("radius"), 64)
	results := h.Directory.Nearby(model.Coordinates{Lat: lat, Lng: lng}, radius, parseIntQuery(r, "limit", 0))
	if results == nil {
		results = []directory.Business{}
	}

	WriteJSON(w, http.StatusOK, results)
}

// Get handles HTTP requests for a single business.
func (h *DirectoryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	business, err := h.Directory.GetByID(r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, business)
}

// Categories handles HTTP requests for the distinct catalogue categories.
func (h *DirectoryHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Directory.Categories())
}
