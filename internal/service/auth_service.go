package service

import (
	"context"
	"fmt"
	"time"

	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	accountSvc   ports.AccountService
	customerRepo ports.CustomerRepository
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	accountSvc ports.AccountService,
	customerRepo ports.CustomerRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		accountSvc:   accountSvc,
		customerRepo: customerRepo,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
	}
}

// Signup hashes the password and registers the customer through the account
// service. The core never sees the plaintext password.
func (s *AuthServiceImpl) Signup(ctx context.Context, req ports.SignupRequest) (*domain.Customer, error) {
	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	return s.accountSvc.CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:         req.Name,
		Phone:        req.Phone,
		CreditLimit:  req.CreditLimit,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
}

// Login validates credentials and returns a JWT token with its expiry.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("find customer: %w", err))
	}
	if customer == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, customer.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(customer.ID, customer.Email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}

// CurrentCustomer resolves the authenticated customer from validated token claims.
func (s *AuthServiceImpl) CurrentCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get customer: %w", err))
	}
	if customer == nil {
		return nil, apperror.ErrNotFound("Customer")
	}
	return customer, nil
}
