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

// MerchantHandler handles merchant account endpoints.
type MerchantHandler struct {
	accountSvc ports.AccountService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(accountSvc ports.AccountService) *MerchantHandler {
	return &MerchantHandler{accountSvc: accountSvc}
}

// Create handles POST /api/v1/merchants.
func (h *MerchantHandler) Create(c *gin.Context) {
	var req dto.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	merchant, err := h.accountSvc.CreateMerchant(c.Request.Context(), ports.CreateMerchantRequest{
		Name:           req.Name,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, merchantToDTO(merchant))
}

// List handles GET /api/v1/merchants.
func (h *MerchantHandler) List(c *gin.Context) {
	merchants, err := h.accountSvc.ListMerchants(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.MerchantResponse, 0, len(merchants))
	for i := range merchants {
		items = append(items, merchantToDTO(&merchants[i]))
	}
	response.OK(c, items)
}

// UpdateCommission handles PATCH /api/v1/merchants/:id/commission.
func (h *MerchantHandler) UpdateCommission(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid merchant id"))
		return
	}

	var req dto.UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	merchant, err := h.accountSvc.UpdateCommission(c.Request.Context(), merchantID, *req.CommissionRate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, merchantToDTO(merchant))
}

func merchantToDTO(m *domain.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		ID:             m.ID.String(),
		Name:           m.Name,
		Phone:          m.Phone,
		CommissionRate: m.CommissionRate,
		TotalEarning:   m.TotalEarning,
		CreatedAt:      formatTime(m.CreatedAt),
	}
}
