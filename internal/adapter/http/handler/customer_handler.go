package handler

import (
	"paylater-ledger/internal/adapter/http/dto"
	"paylater-ledger/internal/core/domain"
	"paylater-ledger/internal/core/ports"
	"paylater-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer account endpoints.
type CustomerHandler struct {
	accountSvc ports.AccountService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(accountSvc ports.AccountService) *CustomerHandler {
	return &CustomerHandler{accountSvc: accountSvc}
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.accountSvc.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerToDTO(&customers[i]))
	}
	response.OK(c, items)
}

func customerToDTO(c *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Phone:       c.Phone,
		CreditLimit: c.CreditLimit,
		Email:       c.Email,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}
