package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paylater-ledger/internal/adapter/http/dto"
	"paylater-ledger/internal/adapter/http/middleware"
	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/internal/core/ports/mocks"
	"paylater-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// --- Auth Handler Tests ---

func TestSignup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	customerID := uuid.New()
	mockAuth.EXPECT().Signup(gomock.Any(), ports.SignupRequest{
		Name:        "Alice",
		Phone:       "0901234567",
		CreditLimit: 2000,
		Email:       "alice@example.com",
		Password:    "password123",
	}).Return(&domain.Customer{
		ID:          customerID,
		Name:        "Alice",
		Phone:       "0901234567",
		CreditLimit: 2000,
		Email:       "alice@example.com",
		CreatedAt:   time.Now().UTC(),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", jsonBody(t, dto.SignupRequest{
		Name:        "Alice",
		Phone:       "0901234567",
		CreditLimit: 2000,
		Email:       "alice@example.com",
		Password:    "password123",
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Signup(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, customerID.String(), data["id"])
	assert.Equal(t, float64(2000), data["credit_limit"])
	// password hash must never appear in responses
	assert.NotContains(t, w.Body.String(), "password")
}

func TestSignup_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Signup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrDuplicateEmail())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", jsonBody(t, dto.SignupRequest{
		Name:        "Alice",
		Email:       "alice@example.com",
		Password:    "password123",
		CreditLimit: 1000,
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Signup(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ACC_001")
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(24 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "alice@example.com", "password123").
		Return("jwt-token", expiry, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "jwt-token", data["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "alice@example.com", "wrong").
		Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestMe_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	customerID := uuid.New()
	mockAuth.EXPECT().CurrentCustomer(gomock.Any(), customerID).Return(&domain.Customer{
		ID:    customerID,
		Name:  "Alice",
		Email: "alice@example.com",
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	c.Set(middleware.CtxCustomerID, customerID)

	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, customerID.String(), data["id"])
}

func TestMe_NoContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)

	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Merchant Handler Tests ---

func TestCreateMerchant_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccount := mocks.NewMockAccountService(ctrl)
	h := NewMerchantHandler(mockAccount)

	merchantID := uuid.New()
	mockAccount.EXPECT().CreateMerchant(gomock.Any(), ports.CreateMerchantRequest{
		Name:           "Corner Store",
		CommissionRate: 10,
	}).Return(&domain.Merchant{
		ID:             merchantID,
		Name:           "Corner Store",
		CommissionRate: 10,
		TotalEarning:   0,
		CreatedAt:      time.Now().UTC(),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/merchants", jsonBody(t, dto.CreateMerchantRequest{
		Name:           "Corner Store",
		CommissionRate: 10,
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, merchantID.String(), data["id"])
	assert.Equal(t, float64(10), data["commission_rate"])
	assert.Equal(t, float64(0), data["total_earning"])
}

func TestCreateMerchant_InvalidRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccount := mocks.NewMockAccountService(ctrl)
	h := NewMerchantHandler(mockAccount)

	// Binding rejects rate > 100 before the service is reached.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/merchants", jsonBody(t, dto.CreateMerchantRequest{
		Name:           "Corner Store",
		CommissionRate: 150,
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCommission_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccount := mocks.NewMockAccountService(ctrl)
	h := NewMerchantHandler(mockAccount)

	merchantID := uuid.New()
	mockAccount.EXPECT().UpdateCommission(gomock.Any(), merchantID, 15).Return(&domain.Merchant{
		ID:             merchantID,
		Name:           "Corner Store",
		CommissionRate: 15,
	}, nil)

	rate := 15
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/merchants/"+merchantID.String()+"/commission",
		jsonBody(t, dto.UpdateCommissionRequest{CommissionRate: &rate}))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: merchantID.String()}}

	h.UpdateCommission(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(15), data["commission_rate"])
}

func TestUpdateCommission_ZeroRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccount := mocks.NewMockAccountService(ctrl)
	h := NewMerchantHandler(mockAccount)

	merchantID := uuid.New()
	mockAccount.EXPECT().UpdateCommission(gomock.Any(), merchantID, 0).Return(&domain.Merchant{
		ID:             merchantID,
		CommissionRate: 0,
	}, nil)

	rate := 0
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/merchants/"+merchantID.String()+"/commission",
		jsonBody(t, dto.UpdateCommissionRequest{CommissionRate: &rate}))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: merchantID.String()}}

	h.UpdateCommission(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateCommission_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccount := mocks.NewMockAccountService(ctrl)
	h := NewMerchantHandler(mockAccount)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/merchants/not-a-uuid/commission", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.UpdateCommission(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMerchants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccount := mocks.NewMockAccountService(ctrl)
	h := NewMerchantHandler(mockAccount)

	mockAccount.EXPECT().ListMerchants(gomock.Any()).Return([]domain.Merchant{
		{ID: uuid.New(), Name: "Store A"},
		{ID: uuid.New(), Name: "Store B"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/merchants", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	assert.Len(t, items, 2)
}

// --- Transaction Handler Tests ---

func TestCreateTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransactionHandler(mockLedger)

	customerID := uuid.New()
	merchantID := uuid.New()
	txnID := uuid.New()

	mockLedger.EXPECT().CreateTransaction(gomock.Any(), ports.CreateTransactionRequest{
		CustomerID: customerID,
		MerchantID: merchantID,
		Amount:     500,
	}).Return(&domain.Transaction{
		ID:             txnID,
		CustomerID:     customerID,
		MerchantID:     merchantID,
		Amount:         500,
		CommissionRate: 10,
		CreatedAt:      time.Now().UTC(),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", jsonBody(t, dto.CreateTransactionRequest{
		CustomerID: customerID.String(),
		MerchantID: merchantID.String(),
		Amount:     500,
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, txnID.String(), data["id"])
	assert.Equal(t, false, data["is_repaid"])
}

func TestCreateTransaction_InsufficientCredit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransactionHandler(mockLedger)

	mockLedger.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInsufficientCredit())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", jsonBody(t, dto.CreateTransactionRequest{
		CustomerID: uuid.New().String(),
		MerchantID: uuid.New().String(),
		Amount:     99999,
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "LED_001")
}

func TestCreateTransaction_NegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransactionHandler(mockLedger)

	// Binding rejects amount <= 0 before the service is reached.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", jsonBody(t, dto.CreateTransactionRequest{
		CustomerID: uuid.New().String(),
		MerchantID: uuid.New().String(),
		Amount:     -5,
	}))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRepay_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransactionHandler(mockLedger)

	txnID := uuid.New()
	repaidAt := time.Now().UTC()
	mockLedger.EXPECT().Repay(gomock.Any(), txnID).Return(&domain.Transaction{
		ID:        txnID,
		Amount:    500,
		IsRepaid:  true,
		CreatedAt: time.Now().UTC(),
		RepaidAt:  &repaidAt,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+txnID.String()+"/repay", nil)
	c.Params = gin.Params{{Key: "id", Value: txnID.String()}}

	h.Repay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, true, data["is_repaid"])
	assert.NotEmpty(t, data["repaid_at"])
}

func TestRepay_AlreadyRepaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransactionHandler(mockLedger)

	txnID := uuid.New()
	mockLedger.EXPECT().Repay(gomock.Any(), txnID).Return(nil, apperror.ErrAlreadyRepaid())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions/"+txnID.String()+"/repay", nil)
	c.Params = gin.Params{{Key: "id", Value: txnID.String()}}

	h.Repay(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "LED_003")
}

func TestListTransactions_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewTransactionHandler(mockLedger)

	mockLedger.EXPECT().ListTransactions(gomock.Any()).
		Return(nil, apperror.InternalError(errors.New("db down")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)

	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

// --- Customer Handler Tests ---

func TestListCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccount := mocks.NewMockAccountService(ctrl)
	h := NewCustomerHandler(mockAccount)

	mockAccount.EXPECT().ListCustomers(gomock.Any()).Return([]domain.Customer{
		{ID: uuid.New(), Name: "Alice", CreditLimit: 2000},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Alice", first["name"])
}

// --- Health Check Tests ---

func TestHealthCheck_AllHealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(nil)
	pg.EXPECT().Name().Return("postgresql").AnyTimes()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(pg)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	pg.EXPECT().Name().Return("postgresql").AnyTimes()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(pg)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
