package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fleetflow/fleet-service/internal/auth"
	"github.com/fleetflow/fleet-service/internal/config"
	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/events"
	"github.com/fleetflow/fleet-service/internal/repository"
)

// AuthService coordinates registration, login and account administration.
// The password policy and role enumeration are fixed per deployment via
// configuration; code paths never pick a policy on their own.
type AuthService struct {
	accounts    repository.AccountRepository
	policy      auth.PasswordPolicy
	enumeration auth.Enumeration
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// LoginResult is the outcome of a successful authentication: the account,
// its resolved tiers and landing destination, and a bearer token.
type LoginResult struct {
	Account     *domain.Account
	Tiers       []domain.Tier
	Destination string
	Token       string
	ExpiresAt   time.Time
}

// NewAuthService builds the service from configuration.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	policy, err := auth.PolicyFromName(cfg.Auth.PasswordPolicy, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	enumeration, err := auth.EnumerationFromName(cfg.Auth.RoleSet)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accounts:    deps.AccountRepo,
		policy:      policy,
		enumeration: enumeration,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}, nil
}

// Register creates a new account. The role is validated against the active
// enumeration (reserved roles rejected outright) and the secret is encoded
// under the active policy before anything is written.
func (s *AuthService) Register(ctx context.Context, name, email, username string, role domain.Role, password string) (*domain.Account, error) {
	if err := s.enumeration.Validate(role); err != nil {
		return nil, err
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if username != "" {
		if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
			return nil, domain.ErrDuplicateIdentity
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}

	secret, err := s.policy.Encode(password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:     name,
		Email:    email,
		Username: username,
		Secret:   secret,
		Role:     role,
		Status:   domain.AccountStatusActive,
		Avatar:   domain.AvatarURL(email),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAccountRegistered, email, events.AccountRegisteredPayload{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
	})
	return account, nil
}

// Login authenticates an identity. ErrAccountNotFound and
// ErrCredentialMismatch stay distinct here; the HTTP boundary decides what
// to disclose. An empty-secret bypass under the legacy policy is honored
// but logged loudly, never silent.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	verification, err := s.policy.Verify(account.Secret, password)
	if err != nil {
		return nil, err
	}
	if verification.EmptySecretBypass {
		s.logger.Warn("empty-secret bypass: seeded account authenticated without a password",
			zap.String("email", email),
			zap.String("policy", s.policy.Name()))
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(account)
	if err != nil {
		return nil, err
	}

	resolution := auth.Resolve(account)
	return &LoginResult{
		Account:     account,
		Tiers:       resolution.Tiers,
		Destination: resolution.Destination,
		Token:       token,
		ExpiresAt:   expiresAt,
	}, nil
}

// UpdateRole overwrites an account's role. Deliberately NOT validated
// against the enumeration: only registration checks role membership, and
// this is the sole path able to assign the reserved admin role.
func (s *AuthService) UpdateRole(ctx context.Context, id int64, newRole domain.Role) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldRole := account.Role

	if err := s.accounts.UpdateRole(ctx, id, newRole); err != nil {
		return nil, err
	}
	account.Role = newRole

	s.publish(ctx, events.EventAccountRoleChanged, account.Email, events.AccountRoleChangedPayload{
		AccountID: id,
		OldRole:   oldRole,
		NewRole:   newRole,
	})
	return account, nil
}

// ResetCredential re-encodes a new secret for the identity. Unknown
// identities are disclosed to the caller by design ("no account found with
// this email"), unlike login.
func (s *AuthService) ResetCredential(ctx context.Context, email, newPassword string) error {
	if _, err := s.accounts.GetByEmail(ctx, email); err != nil {
		return err
	}
	secret, err := s.policy.Encode(newPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdateSecret(ctx, email, secret); err != nil {
		return err
	}
	s.publish(ctx, events.EventCredentialReset, email, events.CredentialResetPayload{Email: email})
	return nil
}

// DeleteAccount removes an account, reporting whether it existed.
func (s *AuthService) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	return s.accounts.Delete(ctx, id)
}

// ListAccounts returns all accounts.
func (s *AuthService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// AuthorizeIdentity re-resolves trust from a bare identity and checks it
// against a tier-gated resource. Compatibility path: no signature, no
// expiry, replayable by anyone who knows the email.
func (s *AuthService) AuthorizeIdentity(ctx context.Context, email string, required domain.Tier) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(account.Role, required); err != nil {
		return nil, err
	}
	return account, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Enumeration exposes the active role enumeration.
func (s *AuthService) Enumeration() auth.Enumeration {
	return s.enumeration
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
