package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paylater-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new ledger entry. Runs inside the caller's transaction so
// the entry commits atomically with the balance updates.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, customer_id, merchant_id, amount, commission_rate, is_repaid, created_at, repaid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.CustomerID, t.MerchantID, t.Amount, t.CommissionRate, t.IsRepaid, t.CreatedAt, t.RepaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by its UUID (without locking).
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, customer_id, merchant_id, amount, commission_rate, is_repaid, created_at, repaid_at
		FROM transactions WHERE id = $1`

	t := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CustomerID, &t.MerchantID, &t.Amount, &t.CommissionRate, &t.IsRepaid, &t.CreatedAt, &t.RepaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

// GetByIDForUpdate fetches a transaction by ID with pessimistic locking, so
// concurrent repayments of the same entry serialize.
// This MUST be called within a transaction.
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, customer_id, merchant_id, amount, commission_rate, is_repaid, created_at, repaid_at
		FROM transactions WHERE id = $1 FOR UPDATE`

	t := &domain.Transaction{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CustomerID, &t.MerchantID, &t.Amount, &t.CommissionRate, &t.IsRepaid, &t.CreatedAt, &t.RepaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction for update: %w", err)
	}
	return t, nil
}

// List returns all ledger entries ordered by creation time.
func (r *TransactionRepo) List(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT id, customer_id, merchant_id, amount, commission_rate, is_repaid, created_at, repaid_at
		FROM transactions ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.CustomerID, &t.MerchantID, &t.Amount, &t.CommissionRate, &t.IsRepaid, &t.CreatedAt, &t.RepaidAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

// MarkRepaid flags a transaction as settled inside a transaction.
func (r *TransactionRepo) MarkRepaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, repaidAt time.Time) error {
	query := `UPDATE transactions SET is_repaid = TRUE, repaid_at = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, repaidAt, id)
	if err != nil {
		return fmt.Errorf("mark transaction repaid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark transaction repaid: transaction %s not found", id)
	}
	return nil
}
