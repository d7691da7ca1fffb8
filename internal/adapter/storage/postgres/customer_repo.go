package postgres

import (
	"context"
	"errors"
	"fmt"

	"paylater-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustomerRepo implements ports.CustomerRepository.
type CustomerRepo struct {
	pool Pool
}

// NewCustomerRepo creates a new CustomerRepo.
func NewCustomerRepo(pool Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Create inserts a new customer into the database.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (id, name, phone, credit_limit, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Phone, c.CreditLimit, c.Email, c.PasswordHash, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID fetches a customer by its UUID (without locking).
func (r *CustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT id, name, phone, credit_limit, email, password_hash, created_at
		FROM customers WHERE id = $1`

	c := &domain.Customer{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.CreditLimit, &c.Email, &c.PasswordHash, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	return c, nil
}

// GetByEmail fetches a customer by email (non-locking read).
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT id, name, phone, credit_limit, email, password_hash, created_at
		FROM customers WHERE email = $1`

	c := &domain.Customer{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&c.ID, &c.Name, &c.Phone, &c.CreditLimit, &c.Email, &c.PasswordHash, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

// List returns all customers ordered by creation time.
func (r *CustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT id, name, phone, credit_limit, email, password_hash, created_at
		FROM customers ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.CreditLimit, &c.Email, &c.PasswordHash, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// GetByIDForUpdate fetches a customer by ID with pessimistic locking.
// This MUST be called within a transaction.
func (r *CustomerRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT id, name, phone, credit_limit, email, password_hash, created_at
		FROM customers WHERE id = $1 FOR UPDATE`

	c := &domain.Customer{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.CreditLimit, &c.Email, &c.PasswordHash, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer for update: %w", err)
	}
	return c, nil
}

// UpdateCreditLimit sets the customer's remaining credit inside a transaction.
func (r *CustomerRepo) UpdateCreditLimit(ctx context.Context, tx pgx.Tx, id uuid.UUID, creditLimit int64) error {
	query := `UPDATE customers SET credit_limit = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, creditLimit, id)
	if err != nil {
		return fmt.Errorf("update credit limit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update credit limit: customer %s not found", id)
	}
	return nil
}
