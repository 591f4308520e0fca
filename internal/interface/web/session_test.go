package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightdesk-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	token, err := m.Issue(entity.Identity{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	identity, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestSessionWrongSecretRejected(t *testing.T) {
	token, err := NewSessionManager("secret-a", time.Hour).Issue(entity.Identity{ID: "u1"})
	require.NoError(t, err)

	_, err = NewSessionManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestSessionExpiredRejected(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	m.ttl = -time.Minute

	token, err := m.Issue(entity.Identity{ID: "u1"})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestFromRequest(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	_, ok := m.FromRequest(r)
	assert.False(t, ok, "anonymous request has no session")

	w := httptest.NewRecorder()
	require.NoError(t, m.SetCookie(w, entity.Identity{ID: "u1", Username: "alice"}))

	r = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	identity, ok := m.FromRequest(r)
	require.True(t, ok)
	assert.Equal(t, "u1", identity.ID)

	r = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "garbage"})
	_, ok = m.FromRequest(r)
	assert.False(t, ok)
}
