package domain

import (
	"time"

	"github.com/google/uuid"
)

// Merchant represents an onboarded merchant. CommissionRate is the platform
// fee in integer percent (0-100). TotalEarning accumulates net earnings and
// is mutated only by the ledger service.
type Merchant struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	CommissionRate int       `json:"commission_rate"`
	TotalEarning   int64     `json:"total_earning"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidCommissionRate reports whether a commission rate is within 0-100.
func ValidCommissionRate(rate int) bool {
	return rate >= 0 && rate <= 100
}
