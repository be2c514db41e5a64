package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetflow/fleet-service/internal/auth"
	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/service"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

// DashboardsHandler serves the tier-gated landing destinations. Identity is
// taken from the bearer principal when present, otherwise from the bare
// "email" query parameter — the latter carries no signature or expiry and is
// kept for compatibility with the historical UI.
type DashboardsHandler struct {
	auth *service.AuthService
}

// NewDashboardsHandler constructs handler.
func NewDashboardsHandler(authService *service.AuthService) *DashboardsHandler {
	return &DashboardsHandler{auth: authService}
}

// Home handles GET /home; any known identity is welcome.
func (h *DashboardsHandler) Home(c *fiber.Ctx) error {
	account, err := h.resolve(c, domain.TierDefault)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome home, %s.", account.Name),
		"role":    account.Role,
	})
}

// Operations handles GET /dashboards/operations.
func (h *DashboardsHandler) Operations(c *fiber.Ctx) error {
	account, err := h.resolve(c, domain.TierOperations)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Access granted. Welcome to the operations dashboard, %s.", account.Role),
	})
}

// Safety handles GET /dashboards/safety.
func (h *DashboardsHandler) Safety(c *fiber.Ctx) error {
	account, err := h.resolve(c, domain.TierSafety)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome to the safety and compliance portal, %s.", account.Role),
	})
}

// Finance handles GET /dashboards/finance.
func (h *DashboardsHandler) Finance(c *fiber.Ctx) error {
	account, err := h.resolve(c, domain.TierFinance)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Welcome to the financial auditing portal, %s.", account.Role),
	})
}

func (h *DashboardsHandler) resolve(c *fiber.Ctx, required domain.Tier) (*domain.Account, error) {
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Account != nil {
		if err := auth.Authorize(principal.Account.Role, required); err != nil {
			return nil, err
		}
		return principal.Account, nil
	}

	email := c.Query("email")
	if email == "" {
		return nil, apperrors.NewUnauthorized("identity required")
	}
	account, err := h.auth.AuthorizeIdentity(c.Context(), email, required)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}
