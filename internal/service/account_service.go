package service

import (
	"context"
	"fmt"
	"time"

	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	customerRepo ports.CustomerRepository
	merchantRepo ports.MerchantRepository
	log          zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(
	customerRepo ports.CustomerRepository,
	merchantRepo ports.MerchantRepository,
	log zerolog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		customerRepo: customerRepo,
		merchantRepo: merchantRepo,
		log:          log,
	}
}

// CreateCustomer registers a new customer with an initial credit limit.
func (s *AccountServiceImpl) CreateCustomer(ctx context.Context, req ports.CreateCustomerRequest) (*domain.Customer, error) {
	if req.CreditLimit < 0 {
		return nil, apperror.Validation("credit limit must be non-negative")
	}

	existing, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateEmail()
	}

	customer := &domain.Customer{
		ID:           uuid.New(),
		Name:         req.Name,
		Phone:        req.Phone,
		CreditLimit:  req.CreditLimit,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create customer: %w", err))
	}

	s.log.Info().
		Str("customer_id", customer.ID.String()).
		Int64("credit_limit", customer.CreditLimit).
		Msg("customer registered")

	return customer, nil
}

// ListCustomers returns all customers in insertion order.
func (s *AccountServiceImpl) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list customers: %w", err))
	}
	return customers, nil
}

// CreateMerchant onboards a new merchant with zero accumulated earnings.
func (s *AccountServiceImpl) CreateMerchant(ctx context.Context, req ports.CreateMerchantRequest) (*domain.Merchant, error) {
	if !domain.ValidCommissionRate(req.CommissionRate) {
		return nil, apperror.ErrInvalidCommissionRate()
	}

	existing, err := s.merchantRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check merchant name: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateName()
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		ID:             uuid.New(),
		Name:           req.Name,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		TotalEarning:   0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create merchant: %w", err))
	}

	s.log.Info().
		Str("merchant_id", merchant.ID.String()).
		Int("commission_rate", merchant.CommissionRate).
		Msg("merchant onboarded")

	return merchant, nil
}

// ListMerchants returns all merchants in insertion order.
func (s *AccountServiceImpl) ListMerchants(ctx context.Context) ([]domain.Merchant, error) {
	merchants, err := s.merchantRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list merchants: %w", err))
	}
	return merchants, nil
}

// UpdateCommission changes a merchant's commission rate. Only future
// transactions use the new rate; already-recorded transactions keep their
// snapshot, so past earnings and pending repayments are unaffected.
func (s *AccountServiceImpl) UpdateCommission(ctx context.Context, merchantID uuid.UUID, rate int) (*domain.Merchant, error) {
	if !domain.ValidCommissionRate(rate) {
		return nil, apperror.ErrInvalidCommissionRate()
	}

	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get merchant: %w", err))
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("Merchant")
	}

	if err := s.merchantRepo.UpdateCommissionRate(ctx, merchantID, rate); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update commission rate: %w", err))
	}

	merchant.CommissionRate = rate

	s.log.Info().
		Str("merchant_id", merchantID.String()).
		Int("commission_rate", rate).
		Msg("commission rate updated")

	return merchant, nil
}
