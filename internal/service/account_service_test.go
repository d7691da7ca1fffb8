package service

import (
	"context"
	"errors"
	"testing"

	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/internal/core/ports/mocks"
	"paylater-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type accountTestDeps struct {
	svc          *AccountServiceImpl
	customerRepo *mocks.MockCustomerRepository
	merchantRepo *mocks.MockMerchantRepository
	ctrl         *gomock.Controller
}

func setupAccountService(t *testing.T) *accountTestDeps {
	ctrl := gomock.NewController(t)
	d := &accountTestDeps{
		customerRepo: mocks.NewMockCustomerRepository(ctrl),
		merchantRepo: mocks.NewMockMerchantRepository(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewAccountService(d.customerRepo, d.merchantRepo, zerolog.Nop())
	return d
}

// ==================== CreateCustomer Tests ====================

func TestAccountService_CreateCustomer_Success(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := ports.CreateCustomerRequest{
		Name:         "Alice",
		Phone:        "0901234567",
		CreditLimit:  2000,
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	}

	d.customerRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(nil, nil)
	d.customerRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	customer, err := d.svc.CreateCustomer(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, "Alice", customer.Name)
	assert.Equal(t, int64(2000), customer.CreditLimit)
	assert.Equal(t, "$2a$10$hash", customer.PasswordHash)
}

func TestAccountService_CreateCustomer_ZeroLimit(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.customerRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, nil)
	d.customerRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	customer, err := d.svc.CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:        "Bob",
		Email:       "bob@example.com",
		CreditLimit: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), customer.CreditLimit)
}

func TestAccountService_CreateCustomer_NegativeLimit(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.CreateCustomer(context.Background(), ports.CreateCustomerRequest{
		Name:        "Bob",
		Email:       "bob@example.com",
		CreditLimit: -100,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "REQ_001", appErr.Code)
}

func TestAccountService_CreateCustomer_DuplicateEmail(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.customerRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(&domain.Customer{
		ID:    uuid.New(),
		Email: "alice@example.com",
	}, nil)

	_, err := d.svc.CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:        "Alice",
		Email:       "alice@example.com",
		CreditLimit: 1000,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "ACC_001", appErr.Code)
}

func TestAccountService_CreateCustomer_RepoError(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.customerRepo.EXPECT().GetByEmail(ctx, gomock.Any()).Return(nil, errors.New("db down"))

	_, err := d.svc.CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:        "Alice",
		Email:       "alice@example.com",
		CreditLimit: 1000,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "SYS_001", appErr.Code)
}

// ==================== CreateMerchant Tests ====================

func TestAccountService_CreateMerchant_Success(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.merchantRepo.EXPECT().GetByName(ctx, "Corner Store").Return(nil, nil)
	d.merchantRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	merchant, err := d.svc.CreateMerchant(ctx, ports.CreateMerchantRequest{
		Name:           "Corner Store",
		Phone:          "0907654321",
		CommissionRate: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, merchant)
	assert.Equal(t, 10, merchant.CommissionRate)
	assert.Equal(t, int64(0), merchant.TotalEarning)
}

func TestAccountService_CreateMerchant_InvalidCommissionRate(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	for _, rate := range []int{-1, 101, 200} {
		_, err := d.svc.CreateMerchant(context.Background(), ports.CreateMerchantRequest{
			Name:           "Corner Store",
			CommissionRate: rate,
		})
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, "ACC_003", appErr.Code)
	}
}

func TestAccountService_CreateMerchant_BoundaryRates(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	for _, rate := range []int{0, 100} {
		d.merchantRepo.EXPECT().GetByName(ctx, gomock.Any()).Return(nil, nil)
		d.merchantRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		merchant, err := d.svc.CreateMerchant(ctx, ports.CreateMerchantRequest{
			Name:           "Store",
			CommissionRate: rate,
		})
		require.NoError(t, err)
		assert.Equal(t, rate, merchant.CommissionRate)
	}
}

func TestAccountService_CreateMerchant_DuplicateName(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.merchantRepo.EXPECT().GetByName(ctx, "Corner Store").Return(&domain.Merchant{
		ID:   uuid.New(),
		Name: "Corner Store",
	}, nil)

	_, err := d.svc.CreateMerchant(ctx, ports.CreateMerchantRequest{
		Name:           "Corner Store",
		CommissionRate: 10,
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "ACC_002", appErr.Code)
}

// ==================== UpdateCommission Tests ====================

func TestAccountService_UpdateCommission_Success(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	d.merchantRepo.EXPECT().GetByID(ctx, merchantID).Return(&domain.Merchant{
		ID:             merchantID,
		Name:           "Corner Store",
		CommissionRate: 10,
	}, nil)
	d.merchantRepo.EXPECT().UpdateCommissionRate(ctx, merchantID, 15).Return(nil)

	merchant, err := d.svc.UpdateCommission(ctx, merchantID, 15)
	require.NoError(t, err)
	assert.Equal(t, 15, merchant.CommissionRate)
}

func TestAccountService_UpdateCommission_NotFound(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	merchantID := uuid.New()

	d.merchantRepo.EXPECT().GetByID(ctx, merchantID).Return(nil, nil)

	_, err := d.svc.UpdateCommission(ctx, merchantID, 15)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LED_004", appErr.Code)
}

func TestAccountService_UpdateCommission_InvalidRate(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.UpdateCommission(context.Background(), uuid.New(), 150)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "ACC_003", appErr.Code)
}

// ==================== List Tests ====================

func TestAccountService_ListCustomers(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.customerRepo.EXPECT().List(ctx).Return([]domain.Customer{
		{ID: uuid.New(), Name: "Alice"},
		{ID: uuid.New(), Name: "Bob"},
	}, nil)

	customers, err := d.svc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestAccountService_ListMerchants(t *testing.T) {
	d := setupAccountService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.merchantRepo.EXPECT().List(ctx).Return([]domain.Merchant{
		{ID: uuid.New(), Name: "Corner Store"},
	}, nil)

	merchants, err := d.svc.ListMerchants(ctx)
	require.NoError(t, err)
	assert.Len(t, merchants, 1)
}
