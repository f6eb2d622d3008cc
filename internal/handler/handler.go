// Package handler adapts HTTP requests to the service layer.
//
// Every endpoint is a Func returning either a Result or an error. Handle is
// the only place that writes to the ResponseWriter, so a failing handler
// never leaves a partial response behind.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"trimmers-api/internal/auth"
	"trimmers-api/internal/model"
	"trimmers-api/internal/response"

	"github.com/rs/zerolog"
)

// maxJSONBody caps the size of decoded request bodies.
const maxJSONBody = 1 << 20

// Result is a successful response.
type Result struct {
	Status  int
	Body    any
	Cookies []*http.Cookie
}

// OK builds a 200 result.
func OK(body any) *Result {
	return &Result{Status: http.StatusOK, Body: body}
}

// Created builds a 201 result.
func Created(body any) *Result {
	return &Result{Status: http.StatusCreated, Body: body}
}

// WithCookie adds a cookie to the result.
func (res *Result) WithCookie(c *http.Cookie) *Result {
	res.Cookies = append(res.Cookies, c)
	return res
}

// Func is an endpoint.
type Func func(r *http.Request) (*Result, error)

// Handle writes the outcome of fn: the result on success, the translated error otherwise.
func Handle(fn Func, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r)
		if err != nil {
			response.Error(w, r, err, logger)
			return
		}
		if res == nil {
			res = OK(nil)
		}

		for _, c := range res.Cookies {
			http.SetCookie(w, c)
		}
		status := res.Status
		if status == 0 {
			status = http.StatusOK
		}
		response.JSON(w, status, res.Body)
	}
}

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return model.NewBadRequest("Request body is required")
	}

	err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return model.NewBadRequest("Request body is required")
	default:
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return model.NewBadRequest("Invalid value for %s", typeErr.Field)
		}
		return model.NewBadRequest("Invalid JSON body")
	}
}

// actorFrom returns the authenticated caller placed in the context by the
// authentication middleware.
func actorFrom(r *http.Request) (model.Actor, error) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		return model.Actor{}, model.ErrAuthenticationInvalid
	}
	return actor, nil
}

// Health answers liveness checks.
func Health(_ *http.Request) (*Result, error) {
	return OK(map[string]string{"status": "healthy"}), nil
}
