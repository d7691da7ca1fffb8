package ports

import (
	"context"
	"time"

	"paylater-ledger/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(customerID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	CustomerID uuid.UUID
	Email      string
}

// --- Service Ports (Business Logic) ---

// AccountService creates and lists customers and merchants.
type AccountService interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateMerchant(ctx context.Context, req CreateMerchantRequest) (*domain.Merchant, error)
	ListMerchants(ctx context.Context) ([]domain.Merchant, error)
	UpdateCommission(ctx context.Context, merchantID uuid.UUID, rate int) (*domain.Merchant, error)
}

// CreateCustomerRequest holds validated input for customer creation.
// PasswordHash is already hashed; the account service treats it as opaque.
type CreateCustomerRequest struct {
	Name         string
	Phone        string
	CreditLimit  int64
	Email        string
	PasswordHash string
}

// CreateMerchantRequest holds validated input for merchant onboarding.
type CreateMerchantRequest struct {
	Name           string
	Phone          string
	CommissionRate int
}

// LedgerService is the bookkeeping core: it records purchases against a
// customer's credit limit and reverses them on repayment.
type LedgerService interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
	Repay(ctx context.Context, transactionID uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// CreateTransactionRequest holds validated input for recording a purchase.
type CreateTransactionRequest struct {
	CustomerID uuid.UUID
	MerchantID uuid.UUID
	Amount     int64
}

// AuthService defines customer authentication business logic.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
	CurrentCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error)
}

// SignupRequest holds input for customer signup.
type SignupRequest struct {
	Name        string
	Phone       string
	CreditLimit int64
	Email       string
	Password    string
}
