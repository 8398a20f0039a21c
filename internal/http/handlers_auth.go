package httpx

import (
	"net/http"

	"github.com/factsuniv/Pk4/internal/identity"
)

// AuthHandlers provides HTTP handlers for the demo account provider.
type AuthHandlers struct {
	Identity *identity.Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles HTTP requests to sign in with a demo account.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Identity.Authenticate(req.Email, req.Password)
	if err != nil {
		// Credential failures are 401, not 400; the request was well-formed.
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "unauthorized", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

type registerRequest struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Name     string        `json:"name"`
	Role     identity.Role `json:"role"`
}

// Register handles HTTP requests to create a demo account.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Identity.Register(req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, profile)
}
