package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetflow/fleet-service/internal/api/dto"
	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/service"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

// AccountsHandler exposes registration, login and account administration.
type AccountsHandler struct {
	auth *service.AuthService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{auth: authService}
}

// Register handles POST /api/users.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Role == "" {
		return apperrors.NewValidationError("name, email, role required", nil)
	}

	account, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Username, domain.Role(req.Role), req.Password)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    dto.NewAccountResponse(account),
	})
}

// Login handles POST /api/login. Not-found and wrong-password are collapsed
// into one generic response so the endpoint cannot be used to enumerate
// registered emails.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrCredentialMismatch) {
			return apperrors.NewDomainError("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.LoginResponse{
			Account:     dto.NewAccountResponse(result.Account),
			Tiers:       result.Tiers,
			Destination: result.Destination,
			Auth:        dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		},
	})
}

// List handles GET /api/users.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	accounts, err := h.auth.ListAccounts(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, dto.NewAccountResponse(&accounts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateRole handles PUT /api/users/:id/role. The new role is written as
// given; the enumeration is not consulted here.
func (h *AccountsHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid account id", nil)
	}
	var req dto.RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Role == "" {
		return apperrors.NewValidationError("role required", nil)
	}

	account, err := h.auth.UpdateRole(c.Context(), id, domain.Role(req.Role))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewAccountResponse(account)})
}

// Delete handles DELETE /api/users/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid account id", nil)
	}
	deleted, err := h.auth.DeleteAccount(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("account", nil)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ResetPassword handles POST /api/password/reset. Unlike login, an unknown
// email is disclosed here: the reset flow tells the user no account exists.
func (h *AccountsHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("email and new_password required", nil)
	}

	if err := h.auth.ResetCredential(c.Context(), req.Email, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return apperrors.NewDomainError("ACCOUNT_NOT_FOUND", "no account found with this email", http.StatusNotFound, nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "password updated successfully"})
}
