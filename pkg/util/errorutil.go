package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/fleetflow/fleet-service/internal/domain"
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

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
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

// ToDomainError converts domain sentinels and generic errors to DomainError.
// Login handlers deliberately do not use this mapping for not-found vs
// mismatch; they collapse both into a generic unauthorized response.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var roleErr *domain.RoleRejectedError
	if errors.As(err, &roleErr) {
		allowed := make([]string, 0, len(roleErr.Allowed))
		for _, r := range roleErr.Allowed {
			allowed = append(allowed, string(r))
		}
		return NewDomainError("ROLE_REJECTED", roleErr.Error(), http.StatusBadRequest,
			map[string]any{"allowed": allowed})
	}
	var reservedErr *domain.ReservedRoleError
	if errors.As(err, &reservedErr) {
		return NewDomainError("ROLE_RESERVED", reservedErr.Error(), http.StatusForbidden, nil)
	}
	var deniedErr *domain.AccessDeniedError
	if errors.As(err, &deniedErr) {
		return NewDomainError("ACCESS_DENIED", deniedErr.Error(), http.StatusForbidden,
			map[string]any{"required_tier": string(deniedErr.Required)})
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return NewDomainError("DUPLICATE_IDENTITY", err.Error(), http.StatusConflict, nil)
	case errors.Is(err, domain.ErrAccountNotFound):
		return NewDomainError("ACCOUNT_NOT_FOUND", err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, domain.ErrCredentialMismatch):
		return NewDomainError("CREDENTIAL_MISMATCH", err.Error(), http.StatusUnauthorized, nil)
	case errors.Is(err, domain.ErrStoreUnavailable):
		return NewDomainError("STORE_UNAVAILABLE", "account store unavailable", http.StatusServiceUnavailable, nil)
	case errors.Is(err, pgx.ErrNoRows):
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
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
