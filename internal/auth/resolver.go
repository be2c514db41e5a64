package auth

import "github.com/fleetflow/fleet-service/internal/domain"

// Landing destinations by tier. Roles holding several tiers land on the
// operations dashboard first, matching the historical sign-in routing.
const (
	DestinationOperations = "/dashboards/operations"
	DestinationSafety     = "/dashboards/safety"
	DestinationFinance    = "/dashboards/finance"
	DestinationHome       = "/home"
)

// Resolution is the outcome of a successful authentication event: the
// authorization tiers the role maps into and the landing destination.
// Nothing here is persisted; every login recomputes it.
type Resolution struct {
	Account     *domain.Account
	Tiers       []domain.Tier
	Destination string
}

// Resolve maps an authenticated account's role to tiers and a destination.
func Resolve(account *domain.Account) Resolution {
	return Resolution{
		Account:     account,
		Tiers:       TiersFor(account.Role),
		Destination: DestinationFor(account.Role),
	}
}

// DestinationFor picks the landing route for a role.
func DestinationFor(role domain.Role) string {
	switch {
	case HasTier(role, domain.TierOperations):
		return DestinationOperations
	case HasTier(role, domain.TierSafety):
		return DestinationSafety
	case HasTier(role, domain.TierFinance):
		return DestinationFinance
	default:
		return DestinationHome
	}
}

// Authorize checks a role against a tier-gated resource.
func Authorize(role domain.Role, required domain.Tier) error {
	if !HasTier(role, required) {
		return &domain.AccessDeniedError{Required: required}
	}
	return nil
}
