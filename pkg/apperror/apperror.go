package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
)

// InternalMessage is the only text a client ever sees for an unexpected failure.
const InternalMessage = "Internal Server Error. Please try again later."

type AppError struct {
	BaseError error
	Message   string
	Details   string
	// Errors carries the individual validation messages.
	Errors []string
	// Fields names the keys that collided on a store-level duplicate.
	Fields []string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

// Cause returns the wrapped lower-level error, if any.
func (e *AppError) Cause() error {
	return e.Err
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

// NewValidation reports every violated rule at once.
func NewValidation(msg string, messages []string) *AppError {
	e := NewAppError(ErrInvalidInput, msg, fmt.Sprintf("%d rule(s) violated", len(messages)), nil)
	e.Errors = messages
	return e
}

func NewNotFound(msg, identifier string) *AppError {
	return NewAppError(ErrNotFound, msg, fmt.Sprintf("identifier '%s' was not found", identifier), nil)
}

func NewConflict(msg, field, value string) *AppError {
	return NewAppError(ErrConflict, msg, fmt.Sprintf("%s '%s' already exists", field, value), nil)
}

// NewDuplicateKey wraps a unique-index violation raised by the store.
func NewDuplicateKey(fields []string, err error) *AppError {
	e := NewAppError(ErrConflict, "Duplicate field value entered", "unique index violated", err)
	e.Fields = fields
	return e
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, InternalMessage, details, err)
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ToJSON renders the response envelope. Client-side failures carry status
// "fail", everything else "error" with the generic message.
func (e *AppError) ToJSON() gin.H {
	if ToHTTPStatus(e) >= http.StatusInternalServerError {
		return gin.H{"status": "error", "message": InternalMessage}
	}
	body := gin.H{"status": "fail", "message": e.Message}
	if len(e.Errors) > 0 {
		body["errors"] = e.Errors
	}
	if len(e.Fields) > 0 {
		body["field"] = e.Fields
	}
	return body
}
