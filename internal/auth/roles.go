package auth

import (
	"fmt"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// Enumeration names accepted in configuration.
const (
	RoleSetFleet  = "fleet"
	RoleSetLegacy = "legacy"
)

// Enumeration is the closed set of role tags a deployment permits at
// registration. There is no way to add a role at runtime.
type Enumeration struct {
	name     string
	roles    []domain.Role
	reserved map[domain.Role]struct{}
}

// FleetRoles is the primary role set. "admin" is reserved: self-service
// signup must never mint it.
func FleetRoles() Enumeration {
	return Enumeration{
		name: RoleSetFleet,
		roles: []domain.Role{
			domain.RoleAdmin,
			domain.RoleManager,
			domain.RoleDispatcher,
			domain.RoleSafety,
			domain.RoleFinance,
		},
		reserved: map[domain.Role]struct{}{domain.RoleAdmin: {}},
	}
}

// LegacyRoles is the older signup subsystem's role set.
func LegacyRoles() Enumeration {
	return Enumeration{
		name: RoleSetLegacy,
		roles: []domain.Role{
			domain.RoleLegacyUser,
			domain.RoleLegacyManager,
			domain.RoleLegacyDispatcher,
			domain.RoleLegacySafetyAnalyst,
			domain.RoleLegacyFinancialAnalyst,
		},
		reserved: map[domain.Role]struct{}{},
	}
}

// EnumerationFromName resolves a configured role set name.
func EnumerationFromName(name string) (Enumeration, error) {
	switch name {
	case RoleSetFleet, "":
		return FleetRoles(), nil
	case RoleSetLegacy:
		return LegacyRoles(), nil
	default:
		return Enumeration{}, fmt.Errorf("unknown role set %q", name)
	}
}

// Name returns the configured identifier for the enumeration.
func (e Enumeration) Name() string { return e.name }

// Roles returns the permitted tags.
func (e Enumeration) Roles() []domain.Role { return e.roles }

// Contains reports enumeration membership.
func (e Enumeration) Contains(role domain.Role) bool {
	for _, r := range e.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Validate checks a submitted role at registration time. Reserved roles are
// rejected even though they belong to the enumeration. Role updates bypass
// this check entirely.
func (e Enumeration) Validate(role domain.Role) error {
	if _, ok := e.reserved[role]; ok {
		return &domain.ReservedRoleError{Role: role}
	}
	if !e.Contains(role) {
		return &domain.RoleRejectedError{Role: role, Allowed: e.roles}
	}
	return nil
}

// roleTiers maps every known role tag, across both taxonomies, to its
// authorization tiers. Roles outside the table hold only the default tier.
var roleTiers = map[domain.Role][]domain.Tier{
	domain.RoleAdmin:      {domain.TierOperations, domain.TierSafety, domain.TierFinance},
	domain.RoleManager:    {domain.TierOperations, domain.TierSafety, domain.TierFinance},
	domain.RoleDispatcher: {domain.TierOperations},
	domain.RoleSafety:     {domain.TierSafety},
	domain.RoleFinance:    {domain.TierFinance},

	domain.RoleLegacyManager:          {domain.TierOperations, domain.TierSafety, domain.TierFinance},
	domain.RoleLegacyDispatcher:       {domain.TierOperations},
	domain.RoleLegacySafetyAnalyst:    {domain.TierSafety},
	domain.RoleLegacyFinancialAnalyst: {domain.TierFinance},
}

// TiersFor computes the authorization tiers for a role tag. Every role holds
// the default tier.
func TiersFor(role domain.Role) []domain.Tier {
	tiers := append([]domain.Tier{}, roleTiers[role]...)
	return append(tiers, domain.TierDefault)
}

// HasTier reports whether the role maps into the required tier.
func HasTier(role domain.Role, required domain.Tier) bool {
	for _, t := range TiersFor(role) {
		if t == required {
			return true
		}
	}
	return false
}
