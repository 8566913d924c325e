package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/barter-backend/internal/dto"
	"github.com/ignatzorin/barter-backend/internal/http/handlers/common"
	"github.com/ignatzorin/barter-backend/internal/service"
)

// AdminHandler обслуживает канал арбитра.
type AdminHandler struct {
	arbiter *service.ArbiterService
}

// NewAdminHandler создаёт новый хэндлер.
func NewAdminHandler(arbiter *service.ArbiterService) *AdminHandler {
	return &AdminHandler{arbiter: arbiter}
}

// Inspect обрабатывает GET /api/admin/offers/:id: предложение целиком,
// включая линию переговоров, без проверки принадлежности.
func (h *AdminHandler) Inspect(c *gin.Context) {
	offerID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	chain, err := h.arbiter.Inspect(c.Request.Context(), offerID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, chain)
}

// Resolve обрабатывает POST /api/admin/offers/:id/resolve.
func (h *AdminHandler) Resolve(c *gin.Context) {
	arbiterID, err := common.CurrentVendorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	offerID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ResolveDisputeRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	offer, err := h.arbiter.Resolve(c.Request.Context(), offerID, arbiterID, req.Outcome, req.Resolution)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, offer)
}
