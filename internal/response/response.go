// Package response writes JSON bodies and translates errors into HTTP responses.
package response

import (
	"encoding/json"
	"net/http"

	"trimmers-api/internal/model"

	"github.com/rs/zerolog"
)

// GenericErrorMessage is returned for every failure that is not a domain error.
const GenericErrorMessage = "Something went wrong try again later"

// RouteNotFoundMessage is returned for unmatched routes.
const RouteNotFoundMessage = "Route does not exist"

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	// The status line is already written; an encode failure can only be dropped.
	_ = json.NewEncoder(w).Encode(data)
}

// Error translates err into a status code and {"msg": ...} body.
// Domain errors keep their status and message. Anything else becomes a 500
// with a generic message and is logged.
func Error(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	domainErr, ok := model.AsDomainError(err)
	if !ok {
		logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		JSON(w, http.StatusInternalServerError, model.ErrorResponse{Msg: GenericErrorMessage})
		return
	}

	status := domainErr.Status()
	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("kind", domainErr.Kind.String()).
		Int("status", status).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(domainErr.Message)

	JSON(w, status, model.ErrorResponse{Msg: domainErr.Message})
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusNotFound, model.ErrorResponse{Msg: RouteNotFoundMessage})
}
