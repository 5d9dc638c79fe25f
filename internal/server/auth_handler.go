package server

import (
	"encoding/json"
	"net/http"

	"github.com/nurak20/smart-pos-web/internal/api"
	"github.com/nurak20/smart-pos-web/internal/auth"
)

type AuthHandler struct {
	session *auth.Session
	client  *api.Client
}

func NewAuthHandler(session *auth.Session, client *api.Client) *AuthHandler {
	return &AuthHandler{session: session, client: client}
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          json.RawMessage `json:"user,omitempty"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "username and password are required")
		return
	}

	if err := h.session.Login(r.Context(), h.client, req.Username, req.Password); err != nil {
		handleAPIError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		User:          h.session.User(),
	})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout()
	respondJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
}

// GET /api/v1/auth/session
func (h *AuthHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := SessionResponse{Authenticated: h.session.IsAuthenticated()}
	if resp.Authenticated {
		resp.User = h.session.User()
	}
	respondJSON(w, http.StatusOK, resp)
}
