package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nurak20/smart-pos-web/internal/api"
)

// makeJWT builds an unsigned token with the given exp claim; the session
// never verifies signatures.
func makeJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims, _ := json.Marshal(map[string]int64{"exp": exp.Unix()})
	payload := base64.RawURLEncoding.EncodeToString(claims)
	return fmt.Sprintf("%s.%s.sig", header, payload)
}

func TestSession_InitiallyAnonymous(t *testing.T) {
	s := NewSession()

	assert.Equal(t, "", s.Token())
	assert.False(t, s.IsAuthenticated())
	assert.True(t, s.IsExpired())
}

func TestSession_SetCredentials(t *testing.T) {
	s := NewSession()
	token := makeJWT(t, time.Now().Add(time.Hour))

	s.SetCredentials(&api.LoginResult{Token: token, User: json.RawMessage(`{"name":"Admin"}`)})

	assert.Equal(t, token, s.Token())
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsExpired())
	assert.JSONEq(t, `{"name":"Admin"}`, string(s.User()))
}

func TestSession_ExpiredToken(t *testing.T) {
	s := NewSession()
	token := makeJWT(t, time.Now().Add(-time.Minute))

	s.SetCredentials(&api.LoginResult{Token: token})

	assert.True(t, s.IsExpired())
	assert.False(t, s.IsAuthenticated())
}

func TestSession_MalformedTokenTreatedAsExpired(t *testing.T) {
	s := NewSession()

	for _, token := range []string{"not-a-jwt", "a.b", "a.!!!.c"} {
		s.SetCredentials(&api.LoginResult{Token: token})
		assert.True(t, s.IsExpired(), "token %q", token)
	}
}

func TestSession_Logout(t *testing.T) {
	s := NewSession()
	s.SetCredentials(&api.LoginResult{
		Token: makeJWT(t, time.Now().Add(time.Hour)),
		User:  json.RawMessage(`{}`),
	})

	s.Logout()

	assert.Equal(t, "", s.Token())
	assert.Nil(t, s.User())
	assert.False(t, s.IsAuthenticated())
}
