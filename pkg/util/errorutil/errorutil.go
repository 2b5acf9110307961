package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts service and domain errors to a transport mapping.
// Callers inspect the error kind, never a concrete exception type.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var notFound *domain.TicketNotFoundError
	if errors.As(err, &notFound) {
		return &DomainError{
			Code:       "TICKET_NOT_FOUND",
			Message:    notFound.Error(),
			HTTPStatus: http.StatusNotFound,
		}
	}
	if errors.Is(err, domain.ErrAccessDenied) {
		return &DomainError{
			Code:       "ACCESS_DENIED",
			Message:    "you do not have access to this ticket",
			HTTPStatus: http.StatusForbidden,
		}
	}
	var transition *domain.InvalidStatusTransitionError
	if errors.As(err, &transition) {
		return &DomainError{
			Code:       "INVALID_STATUS_TRANSITION",
			Message:    transition.Error(),
			HTTPStatus: http.StatusUnprocessableEntity,
			Details: map[string]any{
				"current_status":   transition.Current.String(),
				"attempted_status": transition.Attempted.String(),
			},
		}
	}
	var storage *domain.StorageError
	if errors.As(err, &storage) {
		return &DomainError{
			Code:       "STORAGE_ERROR",
			Message:    "persistence failure",
			HTTPStatus: http.StatusInternalServerError,
			Err:        storage,
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{
			Code:       "NOT_FOUND",
			Message:    "resource not found",
			HTTPStatus: http.StatusNotFound,
		}
	}

	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
