package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nurak20/smart-pos-web/internal/api"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Session holds the terminal's bearer credential and user profile in
// memory. It implements api.TokenProvider, so every outbound request picks
// up the current token.
type Session struct {
	mu    sync.RWMutex
	token string
	user  json.RawMessage
}

func NewSession() *Session {
	return &Session{}
}

// Token returns the current bearer credential, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the stored profile from the last successful login.
func (s *Session) User() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetCredentials installs a login result into the session.
func (s *Session) SetCredentials(res *api.LoginResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = res.Token
	s.user = res.User
}

// Logout discards the credential and profile.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// IsAuthenticated reports whether a usable credential is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !tokenExpired(s.token, time.Now())
}

// IsExpired reports whether the stored token has passed its exp claim.
// The payload is decoded without signature verification; this is a
// client-side convenience check only, the server is authoritative.
func (s *Session) IsExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tokenExpired(s.token, time.Now())
}

func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return true
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return true
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return true
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return true
	}

	return claims.Exp < now.Unix()
}

// Login exchanges credentials against the remote auth endpoint and, on
// success, stores the returned token and user data in the session.
func (s *Session) Login(ctx context.Context, client *api.Client, username, password string) error {
	res, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.SetCredentials(res)
	return nil
}
