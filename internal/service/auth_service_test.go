package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetflow/fleet-service/internal/auth"
	"github.com/fleetflow/fleet-service/internal/config"
	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/events"
)

// memAccountRepo is an in-memory AccountRepository for service tests.
type memAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{nextID: 1, accounts: map[int64]*domain.Account{}}
}

func (r *memAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email || (account.Username != "" && a.Username == account.Username) {
			return domain.ErrDuplicateIdentity
		}
	}
	account.ID = r.nextID
	r.nextID++
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *memAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memAccountRepo) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Role = role
	return nil
}

func (r *memAccountRepo) UpdateSecret(ctx context.Context, email, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			a.Secret = secret
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *memAccountRepo) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return false, nil
	}
	delete(r.accounts, id)
	return true, nil
}

func testConfig(policy, roleSet string) config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "unit-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            bcrypt.MinCost,
			PasswordPolicy:        policy,
			RoleSet:               roleSet,
		},
	}
}

func newTestAuthService(t *testing.T, policy, roleSet string) (*AuthService, *memAccountRepo, events.Dispatcher) {
	t.Helper()
	repo := newMemAccountRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc, err := NewAuthService(testConfig(policy, roleSet), AuthDependencies{
		AccountRepo: repo,
		Dispatcher:  dispatcher,
	})
	require.NoError(t, err)
	return svc, repo, dispatcher
}

func TestRegisterEncodesSecretAndDerivesAvatar(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)

	account, err := svc.Register(context.Background(), "Jim Halpert", "jim@fleetflow.com", "jim", domain.RoleDispatcher, "paper1234")
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.NotEqual(t, "paper1234", account.Secret)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Secret), []byte("paper1234")))
	assert.Equal(t, domain.AvatarURL("jim@fleetflow.com"), account.Avatar)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
}

func TestRegisterRejectsRoleOutsideEnumeration(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)

	var rejectedErr *domain.RoleRejectedError
	_, err := svc.Register(context.Background(), "X", "x@fleetflow.com", "", "superuser", "pw")
	require.ErrorAs(t, err, &rejectedErr)

	// legacy tags are not valid under the fleet set
	_, err = svc.Register(context.Background(), "X", "x@fleetflow.com", "", domain.RoleLegacyDispatcher, "pw")
	assert.ErrorAs(t, err, &rejectedErr)

	accounts, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts, "rejected roles must not write")
}

func TestRegisterRejectsReservedAdminRole(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)

	var reservedErr *domain.ReservedRoleError
	_, err := svc.Register(context.Background(), "Evil", "evil@fleetflow.com", "", domain.RoleAdmin, "pw")
	require.ErrorAs(t, err, &reservedErr)
	assert.Equal(t, domain.RoleAdmin, reservedErr.Role)
}

func TestRegisterDuplicateEmailOrUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jim", "jim@fleetflow.com", "jim", domain.RoleDispatcher, "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "jim@fleetflow.com", "other", domain.RoleSafety, "pw")
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	_, err = svc.Register(ctx, "Other", "other@fleetflow.com", "jim", domain.RoleSafety, "pw")
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1, "failed registrations must not write")
}

func TestLoginResolvesTiersDestinationAndToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Michael", "michael@fleetflow.com", "", domain.RoleManager, "worldsbestboss")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "michael@fleetflow.com", "worldsbestboss")
	require.NoError(t, err)
	assert.Equal(t, []domain.Tier{domain.TierOperations, domain.TierSafety, domain.TierFinance, domain.TierDefault}, result.Tiers)
	assert.Equal(t, auth.DestinationOperations, result.Destination)
	require.NotEmpty(t, result.Token)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, claims.AccountID)
}

func TestLoginKeepsNotFoundAndMismatchDistinct(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Pam", "pam@fleetflow.com", "", domain.RoleDispatcher, "beesly")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "nobody@fleetflow.com", "beesly")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = svc.Login(ctx, "pam@fleetflow.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
}

func TestLoginLegacyEmptySecretBypass(t *testing.T) {
	svc, repo, _ := newTestAuthService(t, auth.PolicyNameLegacyPlaintext, auth.RoleSetFleet)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Account{
		Name: "Dwight Schrute", Email: "dwight@fleetflow.com", Role: domain.RoleSafety,
	}))

	result, err := svc.Login(ctx, "dwight@fleetflow.com", "anything at all")
	require.NoError(t, err)
	assert.Equal(t, auth.DestinationSafety, result.Destination)
}

func TestUpdateRoleSkipsEnumerationValidation(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)
	ctx := context.Background()

	account, err := svc.Register(ctx, "Jim", "jim@fleetflow.com", "", domain.RoleDispatcher, "pw")
	require.NoError(t, err)

	// admin is reserved at registration but assignable here
	updated, err := svc.UpdateRole(ctx, account.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	// even out-of-enumeration tags go through; the holder ends up with
	// only the default tier
	updated, err = svc.UpdateRole(ctx, account.ID, "superuser")
	require.NoError(t, err)
	assert.Equal(t, domain.Role("superuser"), updated.Role)
	assert.Equal(t, []domain.Tier{domain.TierDefault}, auth.TiersFor(updated.Role))
}

func TestResetCredentialReEncodes(t *testing.T) {
	svc, repo, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Oscar", "oscar@fleetflow.com", "", domain.RoleFinance, "oldpw")
	require.NoError(t, err)

	require.NoError(t, svc.ResetCredential(ctx, "oscar@fleetflow.com", "newpw"))

	stored, err := repo.GetByEmail(ctx, "oscar@fleetflow.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Secret), []byte("newpw")))

	_, err = svc.Login(ctx, "oscar@fleetflow.com", "oldpw")
	assert.ErrorIs(t, err, domain.ErrCredentialMismatch)
}

func TestResetCredentialUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)

	err := svc.ResetCredential(context.Background(), "ghost@fleetflow.com", "newpw")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAuthorizeIdentity(t *testing.T) {
	svc, _, _ := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jim", "jim@fleetflow.com", "", domain.RoleDispatcher, "pw")
	require.NoError(t, err)

	account, err := svc.AuthorizeIdentity(ctx, "jim@fleetflow.com", domain.TierOperations)
	require.NoError(t, err)
	assert.Equal(t, "jim@fleetflow.com", account.Email)

	var deniedErr *domain.AccessDeniedError
	_, err = svc.AuthorizeIdentity(ctx, "jim@fleetflow.com", domain.TierFinance)
	assert.ErrorAs(t, err, &deniedErr)

	_, err = svc.AuthorizeIdentity(ctx, "ghost@fleetflow.com", domain.TierOperations)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRegisterPublishesEvent(t *testing.T) {
	svc, _, dispatcher := newTestAuthService(t, auth.PolicyNameBcrypt, auth.RoleSetFleet)

	var received []events.Event
	dispatcher.Subscribe(events.EventAccountRegistered, func(ctx context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	_, err := svc.Register(context.Background(), "Jim", "jim@fleetflow.com", "", domain.RoleDispatcher, "pw")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "jim@fleetflow.com", received[0].Subject)
}

func TestNewAuthServiceRejectsUnknownConfig(t *testing.T) {
	_, err := NewAuthService(testConfig("md5", auth.RoleSetFleet), AuthDependencies{AccountRepo: newMemAccountRepo()})
	assert.Error(t, err)

	_, err = NewAuthService(testConfig(auth.PolicyNameBcrypt, "galactic"), AuthDependencies{AccountRepo: newMemAccountRepo()})
	assert.Error(t, err)
}
