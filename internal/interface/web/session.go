package web

import (
	"net/http"
	"time"

	"flightdesk-service/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookie = "fd_session"
	stateCookie   = "fd_oauth_state"
)

// SessionClaims is the JWT payload of a session cookie. Subject carries
// the external identity id.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies signed session cookies. It is the
// only authentication the request path performs; the identity inside a
// valid cookie was verified by the provider at login time.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager creates a session manager with the given signing
// secret and session lifetime.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the identity.
func (m *SessionManager) Issue(identity entity.Identity) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a session token and returns the identity it carries.
func (m *SessionManager) Parse(tokenStr string) (entity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entity.Identity{}, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return entity.Identity{}, jwt.ErrTokenInvalidClaims
	}
	return entity.Identity{ID: claims.Subject, Username: claims.Username}, nil
}

// SetCookie issues a session token and attaches it to the response.
func (m *SessionManager) SetCookie(w http.ResponseWriter, identity entity.Identity) error {
	token, err := m.Issue(identity)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// FromRequest extracts the authenticated identity from the request's
// session cookie. The second return value reports whether the request
// carries a valid session; anonymous requests get false.
func (m *SessionManager) FromRequest(r *http.Request) (entity.Identity, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return entity.Identity{}, false
	}
	identity, err := m.Parse(cookie.Value)
	if err != nil {
		return entity.Identity{}, false
	}
	return identity, true
}
