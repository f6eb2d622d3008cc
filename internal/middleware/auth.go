package middleware

import (
	"net/http"
	"slices"

	"trimmers-api/internal/auth"
	"trimmers-api/internal/model"
	"trimmers-api/internal/response"

	"github.com/rs/zerolog"
)

// TokenParser validates a session token and returns its actor.
type TokenParser interface {
	Parse(token string) (model.Actor, error)
}

// Authenticate requires a valid session token in the "token" cookie or a
// Bearer header and stores the actor in the request context.
func Authenticate(tokens TokenParser, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				logger.Debug().Str("path", r.URL.Path).Msg("missing session token")
				response.Error(w, r, model.ErrAuthenticationInvalid, logger)
				return
			}

			actor, err := tokens.Parse(token)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid session token")
				response.Error(w, r, model.ErrAuthenticationInvalid, logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// AuthorizeRoles lets through actors holding one of roles. It must run after Authenticate.
func AuthorizeRoles(logger zerolog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok {
				response.Error(w, r, model.ErrAuthenticationInvalid, logger)
				return
			}

			if !slices.Contains(roles, actor.Role) {
				logger.Warn().
					Str("user_id", actor.UserID).
					Str("role", actor.Role).
					Str("path", r.URL.Path).
					Msg("role not permitted")
				response.Error(w, r, model.ErrRouteForbidden, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
