package handler

import (
	"net/http"
	"time"

	"trimmers-api/internal/auth"
	"trimmers-api/internal/model"
	"trimmers-api/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles account and session requests.
type AuthHandler struct {
	service      service.AuthService
	cookieSecure bool
	logger       zerolog.Logger
}

// NewAuthHandler creates a new auth handler. cookieSecure marks the session
// cookie as HTTPS-only.
func NewAuthHandler(service service.AuthService, cookieSecure bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieSecure: cookieSecure,
		logger:       logger.With().Str("handler", "auth").Logger(),
	}
}

func (h *AuthHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(r *http.Request) (*Result, error) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	session, err := h.service.Register(r.Context(), &req)
	if err != nil {
		return nil, err
	}

	return Created(map[string]any{"user": session.User}).
		WithCookie(h.sessionCookie(session.Token, session.ExpiresAt)), nil
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(r *http.Request) (*Result, error) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		return nil, err
	}

	return OK(map[string]any{"user": session.User}).
		WithCookie(h.sessionCookie(session.Token, session.ExpiresAt)), nil
}

// Logout handles GET /auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(_ *http.Request) (*Result, error) {
	c := h.sessionCookie("logout", time.Unix(0, 0))
	c.MaxAge = -1
	return OK(model.ErrorResponse{Msg: "user logged out!"}).WithCookie(c), nil
}

// ShowMe handles GET /users/showMe.
func (h *AuthHandler) ShowMe(r *http.Request) (*Result, error) {
	actor, err := actorFrom(r)
	if err != nil {
		return nil, err
	}

	user, err := h.service.CurrentUser(r.Context(), actor)
	if err != nil {
		return nil, err
	}
	return OK(map[string]any{"user": user}), nil
}
