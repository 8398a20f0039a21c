package httpx

import (
	"errors"
	"net/http"
	"strconv"
)

var errInvalidCoordinates = errors.New("lat and lng query parameters are required")

// parseIntQuery parses an integer query parameter, falling back to def when
// absent or malformed.
func parseIntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
