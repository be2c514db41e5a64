package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the account store and verification flows. Services keep
// the not-found/mismatch distinction; the login boundary collapses it.
var (
	ErrDuplicateIdentity  = errors.New("account with this email or username already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrStoreUnavailable   = errors.New("account store unavailable")
)

// RoleRejectedError reports a registration role outside the active
// enumeration, carrying the allowed list for the caller-facing message.
type RoleRejectedError struct {
	Role    Role
	Allowed []Role
}

func (e *RoleRejectedError) Error() string {
	allowed := make([]string, 0, len(e.Allowed))
	for _, r := range e.Allowed {
		allowed = append(allowed, string(r))
	}
	return fmt.Sprintf("role %q rejected; must be one of: %s", e.Role, strings.Join(allowed, ", "))
}

// ReservedRoleError reports an attempt to self-register a role that only an
// administrative role update may assign.
type ReservedRoleError struct {
	Role Role
}

func (e *ReservedRoleError) Error() string {
	return fmt.Sprintf("cannot register as %s; the role can only be assigned administratively", e.Role)
}

// AccessDeniedError reports a tier-gated resource rejecting the caller's role.
type AccessDeniedError struct {
	Required Tier
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: requires %s tier", e.Required)
}
