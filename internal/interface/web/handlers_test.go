package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/infrastructure/persistence"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExchanger stands in for the identity provider.
type fakeExchanger struct {
	identity entity.Identity
}

func (f *fakeExchanger) AuthURL(state string) string {
	return "https://provider.example/authorize?state=" + state
}

func (f *fakeExchanger) Exchange(ctx context.Context, code string) (entity.Identity, error) {
	return f.identity, nil
}

func newTestHandler(t *testing.T) (http.Handler, *SessionManager) {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNop()

	routes := entity.NewRouteTable([]entity.Route{{Code: "MAD"}, {Code: "BCN"}})
	flights := persistence.NewCollection[entity.Flight]("flights", dir, log, nil)
	users := persistence.NewCollection[entity.User]("users", dir, log, nil)

	sessions := NewSessionManager("test-secret", time.Hour)
	h := NewHandlers(
		usecase.NewBookingService(flights, routes, log, nil),
		usecase.NewRegistryService(users, log, nil),
		&fakeExchanger{identity: entity.Identity{ID: "u1", Username: "alice"}},
		sessions,
		routes,
		log,
	)
	return NewRouter(h, log), sessions
}

func sessionCookieFor(t *testing.T, sessions *SessionManager, identity entity.Identity) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, sessions.SetCookie(w, identity))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func postForm(router http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	router, _ := newTestHandler(t)

	for _, path := range []string{"/", "/dashboard", "/book", "/checkin"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusSeeOther, w.Code, "path %s", path)
		assert.Equal(t, "/login", w.Result().Header.Get("Location"), "path %s", path)
	}
}

func TestCallbackRegistersAndIssuesSession(t *testing.T) {
	router, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=xyz", nil)
	r.AddCookie(&http.Cookie{Name: stateCookie, Value: "xyz"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Result().Header.Get("Location"))

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "callback must set a session cookie")
}

func TestCallbackRejectsBadState(t *testing.T) {
	router, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=forged", nil)
	r.AddCookie(&http.Cookie{Name: stateCookie, Value: "xyz"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookAndCheckInFlow(t *testing.T) {
	router, sessions := newTestHandler(t)
	cookie := sessionCookieFor(t, sessions, entity.Identity{ID: "u1", Username: "alice"})

	w := postForm(router, "/book", url.Values{"from": {"MAD"}, "to": {"BCN"}, "aircraft": {"A320"}}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "Flight booked! ID: ")

	idStr := strings.TrimSpace(strings.Split(strings.Split(body, "ID: ")[1], "<")[0])
	flightID, err := strconv.ParseInt(idStr, 10, 64)
	require.NoError(t, err)

	w = postForm(router, "/checkin", url.Values{"id": {idStr}}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Checked in successfully!")

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(cookie)
	dash := httptest.NewRecorder()
	router.ServeHTTP(dash, r)
	assert.Equal(t, http.StatusOK, dash.Code)
	assert.Contains(t, dash.Body.String(), strconv.FormatInt(flightID, 10))
	assert.Contains(t, dash.Body.String(), "completed")
}

func TestBookRejectsUnknownRoute(t *testing.T) {
	router, sessions := newTestHandler(t)
	cookie := sessionCookieFor(t, sessions, entity.Identity{ID: "u1", Username: "alice"})

	w := postForm(router, "/book", url.Values{"from": {"MAD"}, "to": {"XXX"}, "aircraft": {"A320"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckInUnknownFlightIs404(t *testing.T) {
	router, sessions := newTestHandler(t)
	cookie := sessionCookieFor(t, sessions, entity.Identity{ID: "u1", Username: "alice"})

	w := postForm(router, "/checkin", url.Values{"id": {"123456"}}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postForm(router, "/checkin", url.Values{"id": {"not-a-number"}}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckInOtherUsersFlightIs404(t *testing.T) {
	router, sessions := newTestHandler(t)
	owner := sessionCookieFor(t, sessions, entity.Identity{ID: "u1", Username: "alice"})
	other := sessionCookieFor(t, sessions, entity.Identity{ID: "u2", Username: "bob"})

	w := postForm(router, "/book", url.Values{"from": {"MAD"}, "to": {"BCN"}, "aircraft": {"A320"}}, owner)
	require.Equal(t, http.StatusOK, w.Code)
	idStr := strings.TrimSpace(strings.Split(strings.Split(w.Body.String(), "ID: ")[1], "<")[0])

	w = postForm(router, "/checkin", url.Values{"id": {idStr}}, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
