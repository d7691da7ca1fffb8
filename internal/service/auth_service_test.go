package service

import (
	"context"
	"testing"
	"time"

	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/internal/core/ports/mocks"
	"paylater-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestDeps struct {
	svc          *AuthServiceImpl
	accountSvc   *mocks.MockAccountService
	customerRepo *mocks.MockCustomerRepository
	hashSvc      *mocks.MockHashService
	tokenSvc     *mocks.MockTokenService
	ctrl         *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		accountSvc:   mocks.NewMockAccountService(ctrl),
		customerRepo: mocks.NewMockCustomerRepository(ctrl),
		hashSvc:      mocks.NewMockHashService(ctrl),
		tokenSvc:     mocks.NewMockTokenService(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewAuthService(d.accountSvc, d.customerRepo, d.hashSvc, d.tokenSvc)
	return d
}

// ==================== Signup Tests ====================

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.hashSvc.EXPECT().Hash("s3cret").Return("hashed-s3cret", nil)
	d.accountSvc.EXPECT().CreateCustomer(ctx, ports.CreateCustomerRequest{
		Name:         "Alice",
		Phone:        "0901234567",
		CreditLimit:  2000,
		Email:        "alice@example.com",
		PasswordHash: "hashed-s3cret",
	}).Return(&domain.Customer{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
	}, nil)

	customer, err := d.svc.Signup(ctx, ports.SignupRequest{
		Name:        "Alice",
		Phone:       "0901234567",
		CreditLimit: 2000,
		Email:       "alice@example.com",
		Password:    "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", customer.Email)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.hashSvc.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
	d.accountSvc.EXPECT().CreateCustomer(ctx, gomock.Any()).Return(nil, apperror.ErrDuplicateEmail())

	_, err := d.svc.Signup(ctx, ports.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "ACC_001", appErr.Code)
}

// ==================== Login Tests ====================

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	customerID := uuid.New()
	expiry := time.Now().Add(15 * time.Minute)

	d.customerRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(&domain.Customer{
		ID:           customerID,
		Email:        "alice@example.com",
		PasswordHash: "hashed-s3cret",
	}, nil)
	d.hashSvc.EXPECT().Verify("s3cret", "hashed-s3cret").Return(true, nil)
	d.tokenSvc.EXPECT().Generate(customerID, "alice@example.com").Return("jwt-token", expiry, nil)

	token, exp, err := d.svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, expiry, exp)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.customerRepo.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, nil)

	_, _, err := d.svc.Login(ctx, "nobody@example.com", "s3cret")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "AUTH_001", appErr.Code)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.customerRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(&domain.Customer{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "hashed-s3cret",
	}, nil)
	d.hashSvc.EXPECT().Verify("wrong", "hashed-s3cret").Return(false, nil)

	_, _, err := d.svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "AUTH_001", appErr.Code)
}

// ==================== CurrentCustomer Tests ====================

func TestAuthService_CurrentCustomer_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	customerID := uuid.New()

	d.customerRepo.EXPECT().GetByID(ctx, customerID).Return(&domain.Customer{
		ID:    customerID,
		Name:  "Alice",
		Email: "alice@example.com",
	}, nil)

	customer, err := d.svc.CurrentCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, customerID, customer.ID)
}

func TestAuthService_CurrentCustomer_NotFound(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	customerID := uuid.New()

	d.customerRepo.EXPECT().GetByID(ctx, customerID).Return(nil, nil)

	_, err := d.svc.CurrentCustomer(ctx, customerID)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LED_004", appErr.Code)
}
