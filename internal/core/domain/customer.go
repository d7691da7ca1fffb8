package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a registered customer with a revolving credit limit.
// CreditLimit is the available credit in integer currency units; it is
// decreased when a purchase is recorded and restored on repayment. Only the
// ledger service mutates it.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	CreditLimit  int64     `json:"credit_limit"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose
	CreatedAt    time.Time `json:"created_at"`
}

// CanAfford reports whether a purchase of the given amount fits within the
// customer's available credit.
func (c *Customer) CanAfford(amount int64) bool {
	return amount <= c.CreditLimit
}
