package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a ledger entry for a single purchase made on credit.
// Amount and CommissionRate are immutable once written; CommissionRate is the
// merchant's rate captured at creation time so that a later rate change never
// breaks the create/repay symmetry. IsRepaid transitions false to true at
// most once.
type Transaction struct {
	ID             uuid.UUID  `json:"id"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	MerchantID     uuid.UUID  `json:"merchant_id"`
	Amount         int64      `json:"amount"`
	CommissionRate int        `json:"commission_rate"`
	IsRepaid       bool       `json:"is_repaid"`
	CreatedAt      time.Time  `json:"created_at"`
	RepaidAt       *time.Time `json:"repaid_at,omitempty"`
}

// CanRepay reports whether the transaction is still outstanding.
func (t *Transaction) CanRepay() bool {
	return !t.IsRepaid
}

// Fee returns the platform commission for this transaction, using the rate
// snapshot taken at creation.
func (t *Transaction) Fee() int64 {
	return CommissionFee(t.Amount, t.CommissionRate)
}

// NetEarning returns the amount credited to the merchant after commission.
func (t *Transaction) NetEarning() int64 {
	return t.Amount - t.Fee()
}

// CommissionFee computes the platform fee for an amount at an integer percent
// rate, rounding half up to the nearest currency unit. The same function is
// applied on creation and repayment so the two always cancel exactly.
func CommissionFee(amount int64, rate int) int64 {
	return (amount*int64(rate) + 50) / 100
}
