package handler

import (
	"paylater-ledger/internal/adapter/http/dto"
	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/pkg/apperror"
	"paylater-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles ledger transaction endpoints.
type TransactionHandler struct {
	ledgerSvc ports.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerSvc ports.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerSvc: ledgerSvc}
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid customer id"))
		return
	}
	merchantID, err := uuid.Parse(req.MerchantID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	txn, err := h.ledgerSvc.CreateTransaction(c.Request.Context(), ports.CreateTransactionRequest{
		CustomerID: customerID,
		MerchantID: merchantID,
		Amount:     req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, transactionToDTO(txn))
}

// Repay handles POST /api/v1/transactions/:id/repay.
func (h *TransactionHandler) Repay(c *gin.Context) {
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	txn, err := h.ledgerSvc.Repay(c.Request.Context(), txnID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, transactionToDTO(txn))
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	txns, err := h.ledgerSvc.ListTransactions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, transactionToDTO(&txns[i]))
	}
	response.OK(c, items)
}

func transactionToDTO(t *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:             t.ID.String(),
		CustomerID:     t.CustomerID.String(),
		MerchantID:     t.MerchantID.String(),
		Amount:         t.Amount,
		CommissionRate: t.CommissionRate,
		IsRepaid:       t.IsRepaid,
		CreatedAt:      formatTime(t.CreatedAt),
	}
	if t.RepaidAt != nil {
		s := formatTime(*t.RepaidAt)
		resp.RepaidAt = &s
	}
	return resp
}
