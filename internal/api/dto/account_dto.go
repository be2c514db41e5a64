package dto

import (
	"time"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RoleUpdateRequest payload for the administrative role change.
type RoleUpdateRequest struct {
	Role string `json:"role"`
}

// PasswordResetRequest payload for the credential reset flow.
type PasswordResetRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// AccountResponse is the public account shape; the secret never leaves the
// service.
type AccountResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Username  string      `json:"username,omitempty"`
	Role      domain.Role `json:"role"`
	Status    string      `json:"status"`
	Avatar    string      `json:"avatar"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse returns the account with its resolved authorization.
type LoginResponse struct {
	Account     AccountResponse `json:"account"`
	Tiers       []domain.Tier   `json:"tiers"`
	Destination string          `json:"redirect_url"`
	Auth        AuthResponse    `json:"auth"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Username:  account.Username,
		Role:      account.Role,
		Status:    account.Status,
		Avatar:    account.Avatar,
		CreatedAt: account.CreatedAt,
	}
}
