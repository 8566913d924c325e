package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/barter-backend/internal/http/handlers/common"
	"github.com/ignatzorin/barter-backend/internal/service"
)

// VendorHandler обслуживает справочник продавцов.
type VendorHandler struct {
	offers *service.OfferService
}

// NewVendorHandler создаёт новый хэндлер.
func NewVendorHandler(offers *service.OfferService) *VendorHandler {
	return &VendorHandler{offers: offers}
}

// List обрабатывает GET /api/vendors: кандидаты в контрагенты,
// без самого запрашивающего.
func (h *VendorHandler) List(c *gin.Context) {
	vendorID, err := common.CurrentVendorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	vendors, err := h.offers.ListEligibleVendors(c.Request.Context(), vendorID, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"vendors": vendors, "limit": limit, "offset": offset})
}
