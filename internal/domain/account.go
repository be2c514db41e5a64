package domain

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Role tags an account with its position in the organization. The set of
// permitted tags is closed per deployment (see auth.Enumeration); the type
// itself is open on purpose so that the unvalidated role-update path can
// store tags outside the active enumeration.
type Role string

// Fleet role set.
const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleDispatcher Role = "dispatcher"
	RoleSafety     Role = "safety"
	RoleFinance    Role = "finance"
)

// Legacy role set (the older signup subsystem).
const (
	RoleLegacyUser             Role = "User"
	RoleLegacyManager          Role = "Manager"
	RoleLegacyDispatcher       Role = "Dispatcher"
	RoleLegacySafetyAnalyst    Role = "Safety Analyst"
	RoleLegacyFinancialAnalyst Role = "Financial Analyst"
)

// Tier is a derived authorization bucket computed from the role tag. It is
// never persisted; every request recomputes it.
type Tier string

const (
	TierOperations Tier = "operations"
	TierSafety     Tier = "safety"
	TierFinance    Tier = "finance"
	TierDefault    Tier = "default"
)

// AccountStatusActive is the default activity status for new accounts.
const AccountStatusActive = "active"

// Account is one principal able to authenticate.
type Account struct {
	ID        int64
	Name      string
	Email     string
	Username  string
	Secret    string
	Role      Role
	Status    string
	Avatar    string
	CreatedAt time.Time
}

// AvatarURL derives the cosmetic profile image for an email. Deterministic
// display data only; not part of any correctness property.
func AvatarURL(email string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return fmt.Sprintf("https://i.pravatar.cc/150?img=%d", h.Sum32()%70)
}
