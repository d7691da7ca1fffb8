package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomer_CanAfford(t *testing.T) {
	c := &Customer{CreditLimit: 2000}

	assert.True(t, c.CanAfford(500))
	assert.True(t, c.CanAfford(2000))
	assert.False(t, c.CanAfford(2001))
}

func TestValidCommissionRate(t *testing.T) {
	assert.True(t, ValidCommissionRate(0))
	assert.True(t, ValidCommissionRate(10))
	assert.True(t, ValidCommissionRate(100))
	assert.False(t, ValidCommissionRate(-1))
	assert.False(t, ValidCommissionRate(101))
}

func TestTransaction_CanRepay(t *testing.T) {
	txn := &Transaction{IsRepaid: false}
	assert.True(t, txn.CanRepay())

	txn.IsRepaid = true
	assert.False(t, txn.CanRepay())
}

func TestCommissionFee_Rounding(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		rate   int
		fee    int64
	}{
		{"exact division", 500, 10, 50},
		{"zero rate", 500, 0, 0},
		{"full rate", 500, 100, 500},
		{"rounds half up", 50, 15, 8},   // 7.5 -> 8
		{"rounds down", 33, 10, 3},      // 3.3 -> 3
		{"rounds up", 37, 10, 4},        // 3.7 -> 4
		{"one unit", 1, 50, 1},          // 0.5 -> 1
		{"large amount", 1000000, 3, 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fee, CommissionFee(tt.amount, tt.rate))
		})
	}
}

func TestTransaction_NetEarning_CancelsExactly(t *testing.T) {
	// The same snapshot rate must yield the same fee on create and repay so a
	// create+repay pair nets the merchant earning to zero.
	for _, amount := range []int64{1, 33, 37, 500, 999, 123457} {
		for _, rate := range []int{0, 1, 7, 10, 15, 50, 100} {
			txn := &Transaction{Amount: amount, CommissionRate: rate}
			credited := txn.NetEarning()
			reversed := txn.NetEarning()
			assert.Equal(t, int64(0), credited-reversed)
		}
	}
}

func TestTransaction_Fee_UsesSnapshotRate(t *testing.T) {
	txn := &Transaction{Amount: 500, CommissionRate: 10}
	assert.Equal(t, int64(50), txn.Fee())
	assert.Equal(t, int64(450), txn.NetEarning())
}
