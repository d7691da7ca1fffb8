package dto

// SignupRequest is the request body for customer registration.
type SignupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=20"`
	CreditLimit int64  `json:"credit_limit" binding:"gte=0"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for customer login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CreateMerchantRequest is the request body for merchant onboarding.
type CreateMerchantRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Phone          string `json:"phone" binding:"omitempty,max=20"`
	CommissionRate int    `json:"commission_rate" binding:"gte=0,lte=100"`
}

// UpdateCommissionRequest is the request body for changing a merchant's rate.
// Pointer so that an explicit zero is distinguishable from an absent field.
type UpdateCommissionRequest struct {
	CommissionRate *int `json:"commission_rate" binding:"required,gte=0,lte=100"`
}

// CreateTransactionRequest is the request body for recording a purchase.
type CreateTransactionRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
	MerchantID string `json:"merchant_id" binding:"required,uuid"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
}

// CustomerResponse is the response body for customer data.
type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	CreditLimit int64  `json:"credit_limit"`
	Email       string `json:"email"`
	CreatedAt   string `json:"created_at"`
}

// MerchantResponse is the response body for merchant data.
type MerchantResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	CommissionRate int    `json:"commission_rate"`
	TotalEarning   int64  `json:"total_earning"`
	CreatedAt      string `json:"created_at"`
}

// TransactionResponse is the response body for ledger entries.
type TransactionResponse struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customer_id"`
	MerchantID     string  `json:"merchant_id"`
	Amount         int64   `json:"amount"`
	CommissionRate int     `json:"commission_rate"`
	IsRepaid       bool    `json:"is_repaid"`
	CreatedAt      string  `json:"created_at"`
	RepaidAt       *string `json:"repaid_at,omitempty"`
}
