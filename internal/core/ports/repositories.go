package ports

import (
	"context"
	"time"

	"paylater-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustomerRepository defines persistence operations for customers.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Customer, error)
	UpdateCreditLimit(ctx context.Context, tx pgx.Tx, id uuid.UUID, creditLimit int64) error
}

// MerchantRepository defines persistence operations for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	GetByName(ctx context.Context, name string) (*domain.Merchant, error)
	List(ctx context.Context) ([]domain.Merchant, error)
	UpdateCommissionRate(ctx context.Context, id uuid.UUID, rate int) error
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Merchant, error)
	UpdateTotalEarning(ctx context.Context, tx pgx.Tx, id uuid.UUID, totalEarning int64) error
}

// TransactionRepository defines persistence operations for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	MarkRepaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, repaidAt time.Time) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
