package postgres

import (
	"context"

	"paylater-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// Transactor hands out database transactions to the service layer. The
// ledger service runs its debit/credit sections inside one of these so the
// FOR UPDATE row locks taken by the repositories hold until commit.
type Transactor struct {
	pool Pool
}

var _ ports.DBTransactor = (*Transactor)(nil)

// NewTransactor wraps the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin opens a transaction with the pool's default isolation level.
// Read committed is sufficient: correctness comes from the row locks,
// not from a stricter isolation mode.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}
