package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// Policy names accepted in configuration.
const (
	PolicyNameBcrypt          = "bcrypt"
	PolicyNameLegacyPlaintext = "legacy-plaintext"
)

// Verification carries named verification outcomes beyond pass/fail.
type Verification struct {
	// EmptySecretBypass is set when a legacy account with no stored secret
	// was let through regardless of the presented password. The bypass is
	// intentional for pre-seeded demo accounts; callers must log it rather
	// than treat it as a normal match.
	EmptySecretBypass bool
}

// PasswordPolicy encodes and verifies credential secrets. The active policy
// is a deployment choice; both implementations are always compiled in.
type PasswordPolicy interface {
	Name() string
	Encode(plain string) (string, error)
	Verify(stored, presented string) (Verification, error)
}

// BcryptPolicy stores salted one-way digests. Default.
type BcryptPolicy struct {
	Cost int
}

func (p BcryptPolicy) Name() string { return PolicyNameBcrypt }

// Encode hashes the plaintext with the configured cost.
func (p BcryptPolicy) Encode(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), p.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify recomputes and compares via bcrypt's own comparator.
func (p BcryptPolicy) Verify(stored, presented string) (Verification, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)); err != nil {
		return Verification{}, domain.ErrCredentialMismatch
	}
	return Verification{}, nil
}

// LegacyPlaintextPolicy stores the raw password and compares byte-for-byte.
// An empty stored secret authenticates unconditionally. Opt-in only.
type LegacyPlaintextPolicy struct{}

func (p LegacyPlaintextPolicy) Name() string { return PolicyNameLegacyPlaintext }

// Encode stores the password as-is.
func (p LegacyPlaintextPolicy) Encode(plain string) (string, error) {
	return plain, nil
}

// Verify applies exact byte equality: case-sensitive, no trimming.
func (p LegacyPlaintextPolicy) Verify(stored, presented string) (Verification, error) {
	if stored == "" {
		return Verification{EmptySecretBypass: true}, nil
	}
	if presented != stored {
		return Verification{}, domain.ErrCredentialMismatch
	}
	return Verification{}, nil
}

// PolicyFromName resolves a configured policy name.
func PolicyFromName(name string, bcryptCost int) (PasswordPolicy, error) {
	switch name {
	case PolicyNameBcrypt, "":
		return BcryptPolicy{Cost: bcryptCost}, nil
	case PolicyNameLegacyPlaintext:
		return LegacyPlaintextPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown password policy %q", name)
	}
}
