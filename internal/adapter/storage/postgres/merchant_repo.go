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

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

// Create inserts a new merchant into the database.
func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	query := `INSERT INTO merchants (id, name, phone, commission_rate, total_earning, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Name, m.Phone, m.CommissionRate, m.TotalEarning, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

// GetByID fetches a merchant by its UUID (without locking).
func (r *MerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT id, name, phone, commission_rate, total_earning, created_at, updated_at
		FROM merchants WHERE id = $1`

	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Phone, &m.CommissionRate, &m.TotalEarning, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}
	return m, nil
}

// GetByName fetches a merchant by its unique name (non-locking read).
func (r *MerchantRepo) GetByName(ctx context.Context, name string) (*domain.Merchant, error) {
	query := `SELECT id, name, phone, commission_rate, total_earning, created_at, updated_at
		FROM merchants WHERE name = $1`

	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&m.ID, &m.Name, &m.Phone, &m.CommissionRate, &m.TotalEarning, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant by name: %w", err)
	}
	return m, nil
}

// List returns all merchants ordered by creation time.
func (r *MerchantRepo) List(ctx context.Context) ([]domain.Merchant, error) {
	query := `SELECT id, name, phone, commission_rate, total_earning, created_at, updated_at
		FROM merchants ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	defer rows.Close()

	var merchants []domain.Merchant
	for rows.Next() {
		var m domain.Merchant
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Phone, &m.CommissionRate, &m.TotalEarning, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merchants: %w", err)
	}
	return merchants, nil
}

// UpdateCommissionRate changes the merchant's rate for future transactions.
func (r *MerchantRepo) UpdateCommissionRate(ctx context.Context, id uuid.UUID, rate int) error {
	query := `UPDATE merchants SET commission_rate = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, rate, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update commission rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update commission rate: merchant %s not found", id)
	}
	return nil
}

// GetByIDForUpdate fetches a merchant by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *MerchantRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT id, name, phone, commission_rate, total_earning, created_at, updated_at
		FROM merchants WHERE id = $1 FOR UPDATE`

	m := &domain.Merchant{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Phone, &m.CommissionRate, &m.TotalEarning, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant for update: %w", err)
	}
	return m, nil
}

// UpdateTotalEarning sets the merchant's accumulated earnings inside a transaction.
func (r *MerchantRepo) UpdateTotalEarning(ctx context.Context, tx pgx.Tx, id uuid.UUID, totalEarning int64) error {
	query := `UPDATE merchants SET total_earning = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, totalEarning, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update total earning: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update total earning: merchant %s not found", id)
	}
	return nil
}
