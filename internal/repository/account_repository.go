package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// AccountRepository defines persistence access for accounts. Uniqueness of
// email (and username, when set) is enforced only by store constraints;
// concurrent registrations racing on the same identity surface as
// ErrDuplicateIdentity.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	UpdateSecret(ctx context.Context, email, secret string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, name, email, username, secret, role, status, avatar, created_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (name, email, username, secret, role, status, avatar)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.Username,
		account.Secret,
		account.Role,
		account.Status,
		account.Avatar,
	).Scan(&account.ID, &account.CreatedAt)
	return mapAccountError(err)
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE username=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapAccountError(err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Username, &a.Secret, &a.Role, &a.Status, &a.Avatar, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateRole overwrites the role tag unconditionally. The new tag is NOT
// checked against the active enumeration; only registration validates roles.
func (r *accountRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	const query = `UPDATE accounts SET role=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, role, id)
	if err != nil {
		return mapAccountError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) UpdateSecret(ctx context.Context, email, secret string) error {
	const query = `UPDATE accounts SET secret=$1 WHERE email=$2`
	cmd, err := r.pool.Exec(ctx, query, secret, email)
	if err != nil {
		return mapAccountError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM accounts WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, mapAccountError(err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *accountRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Username, &a.Secret, &a.Role, &a.Status, &a.Avatar, &a.CreatedAt); err != nil {
		return nil, mapAccountError(err)
	}
	return &a, nil
}

func mapAccountError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrAccountNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateIdentity
	}
	return err
}
