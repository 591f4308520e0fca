// Package web is the HTTP glue around the core services: session cookies,
// the OAuth login dance, and the booking/check-in forms. Domain decisions
// all happen in the usecase layer; handlers only translate.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"flightdesk-service/internal/domain/apperrors"
	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/infrastructure/oauth"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
)

// IdentityExchanger turns a provider authorization code into a verified
// identity. Satisfied by oauth.DiscordOAuth.
type IdentityExchanger interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (entity.Identity, error)
}

// Handlers carries the wired dependencies for all HTTP routes
type Handlers struct {
	booking  *usecase.BookingService
	registry *usecase.RegistryService
	identity IdentityExchanger
	sessions *SessionManager
	routes   entity.RouteTable
	logger   logger.Logger
}

// NewHandlers creates the HTTP handler set
func NewHandlers(
	booking *usecase.BookingService,
	registry *usecase.RegistryService,
	identity IdentityExchanger,
	sessions *SessionManager,
	routes entity.RouteTable,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		booking:  booking,
		registry: registry,
		identity: identity,
		sessions: sessions,
		routes:   routes,
		logger:   log,
	}
}

// Home redirects to the dashboard, or to login for anonymous visitors
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.FromRequest(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Login starts the provider authorization flow
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	state := oauth.NewState()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.identity.AuthURL(state), http.StatusSeeOther)
}

// Callback completes the provider flow: verifies state, exchanges the
// code for an identity, registers the user, and issues a session cookie
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No code provided", http.StatusBadRequest)
		return
	}
	state, err := r.Cookie(stateCookie)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	identity, err := h.identity.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("OAuth login failed", "error", err)
		http.Error(w, "OAuth login failed.", http.StatusBadGateway)
		return
	}

	if _, err := h.registry.EnsureRegistered(r.Context(), identity); err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.sessions.SetCookie(w, identity); err != nil {
		h.logger.Error("Failed to issue session", "error", err)
		http.Error(w, "Login failed.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard shows the caller's flights
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.sessions.FromRequest(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	flights, err := h.booking.FlightsForUser(r.Context(), identity.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, dashboardPage, map[string]interface{}{
		"Username": identity.Username,
		"Flights":  flights,
	})
}

// BookForm renders the booking form
func (h *Handlers) BookForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.FromRequest(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, bookPage, map[string]interface{}{
		"Routes":   h.routes.Codes(),
		"Aircraft": entity.AircraftTypes,
	})
}

// Book creates a flight from the submitted form
func (h *Handlers) Book(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.sessions.FromRequest(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Malformed form", http.StatusBadRequest)
		return
	}

	flightID, err := h.booking.Book(r.Context(), identity.ID, usecase.BookingRequest{
		From:     r.PostFormValue("from"),
		To:       r.PostFormValue("to"),
		Aircraft: r.PostFormValue("aircraft"),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, bookedPage, map[string]interface{}{"ID": flightID})
}

// CheckInForm renders the check-in form
func (h *Handlers) CheckInForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.FromRequest(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, checkinPage, nil)
}

// CheckIn completes the caller's flight from the submitted form
func (h *Handlers) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.sessions.FromRequest(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Malformed form", http.StatusBadRequest)
		return
	}
	flightID, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Flight not found.", http.StatusNotFound)
		return
	}

	if err := h.booking.CheckIn(r.Context(), flightID, identity.ID); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, checkedInPage, nil)
}

func (h *Handlers) render(w http.ResponseWriter, page *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		h.logger.Error("Failed to render page", "error", err)
	}
}

// renderError maps the error taxonomy onto HTTP responses
func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrIDCollision):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrNotFound):
		http.Error(w, "Flight not found.", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		h.logger.Error("Store unavailable", "error", err)
		http.Error(w, "Service temporarily unavailable.", http.StatusServiceUnavailable)
	case errors.Is(err, apperrors.ErrCorruptStore):
		h.logger.Error("Corrupt store", "error", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
	default:
		h.logger.Error("Request failed", "error", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
	}
}
