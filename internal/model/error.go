package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a domain error. The set is closed; every kind maps to one HTTP status.
type ErrorKind int

const (
	KindAPI ErrorKind = iota
	KindBadRequest
	KindUnauthenticated
	KindUnauthorized
	KindForbidden
	KindNotFound
)

var kindNames = map[ErrorKind]string{
	KindAPI:             "CustomAPIError",
	KindBadRequest:      "BadRequest",
	KindUnauthenticated: "Unauthenticated",
	KindUnauthorized:    "Unauthorized",
	KindForbidden:       "Forbidden",
	KindNotFound:        "NotFound",
}

var kindStatuses = map[ErrorKind]int{
	KindAPI:             http.StatusInternalServerError,
	KindBadRequest:      http.StatusBadRequest,
	KindUnauthenticated: http.StatusUnauthorized,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindAPI]
}

// Status returns the HTTP status code for the kind.
func (k ErrorKind) Status() int {
	if status, ok := kindStatuses[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// DomainError is an expected failure raised where a precondition does not hold.
// It travels up unchanged until the HTTP layer translates it.
type DomainError struct {
	Kind    ErrorKind
	Message string
	status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Status returns the HTTP status code carried by the error.
func (e *DomainError) Status() int {
	if e.status != 0 {
		return e.status
	}
	return e.Kind.Status()
}

// NewDomainError creates a new domain error of the given kind.
func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
	}
}

// NewAPIError creates a generic API error. A zero status defaults to 500.
func NewAPIError(message string, status int) *DomainError {
	return &DomainError{
		Kind:    KindAPI,
		Message: message,
		status:  status,
	}
}

func NewBadRequest(format string, args ...any) *DomainError {
	return NewDomainError(KindBadRequest, fmt.Sprintf(format, args...))
}

func NewUnauthenticated(message string) *DomainError {
	return NewDomainError(KindUnauthenticated, message)
}

func NewUnauthorized(message string) *DomainError {
	return NewDomainError(KindUnauthorized, message)
}

func NewForbidden(message string) *DomainError {
	return NewDomainError(KindForbidden, message)
}

func NewNotFound(format string, args ...any) *DomainError {
	return NewDomainError(KindNotFound, fmt.Sprintf(format, args...))
}

// AsDomainError finds the first DomainError in err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// IsKind reports whether err carries a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	domainErr, ok := AsDomainError(err)
	return ok && domainErr.Kind == kind
}

// Common domain errors
var (
	ErrNoFileUploaded        = NewDomainError(KindBadRequest, "No File Uploaded")
	ErrNotAnImage            = NewDomainError(KindBadRequest, "Please Upload Image")
	ErrImageTooLarge         = ImageTooLarge(1024 * 1024)
	ErrAuthenticationInvalid = NewDomainError(KindUnauthenticated, "Authentication Invalid")
	ErrInvalidCredentials    = NewDomainError(KindUnauthenticated, "Invalid Credentials")
	ErrRouteForbidden        = NewDomainError(KindForbidden, "Unauthorized to access this route")
	ErrNotPermitted          = NewDomainError(KindUnauthorized, "Not authorized to access this route")
)

// ProductNotFound builds the NotFound error for a missing product id.
func ProductNotFound(id string) *DomainError {
	return NewNotFound("No product with id : %s", id)
}

// ImageTooLarge builds the BadRequest error for an image above maxBytes.
func ImageTooLarge(maxBytes int64) *DomainError {
	return NewBadRequest("Please upload image smaller than %s", formatBytes(maxBytes))
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
