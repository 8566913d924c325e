package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/barter-backend/internal/dto"
	"github.com/ignatzorin/barter-backend/internal/http/handlers/common"
	"github.com/ignatzorin/barter-backend/internal/service"
)

// OfferHandler обслуживает HTTP операции с предложениями обмена.
type OfferHandler struct {
	offers *service.OfferService
}

// NewOfferHandler создаёт новый хэндлер.
func NewOfferHandler(offers *service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// Create обрабатывает POST /api/offers.
func (h *OfferHandler) Create(c *gin.Context) {
	vendorID, err := common.CurrentVendorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateOfferRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	recipientID, err := req.ParseRecipientID()
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	items, err := req.ParseItems()
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	view, err := h.offers.Create(c.Request.Context(), service.CreateOfferInput{
		InitiatorVendorID: vendorID,
		RecipientVendorID: recipientID,
		Items:             toItemInputs(items),
		CashGapCents:      req.CashGapCents,
		CashGapDirection:  req.CashGapDirection,
		Message:           req.Message,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, view)
}

// Update обрабатывает PUT /api/offers/:id.
func (h *OfferHandler) Update(c *gin.Context) {
	vendorID, offerID, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	items, err := req.ParseItems()
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	view, err := h.offers.Update(c.Request.Context(), service.UpdateOfferInput{
		OfferID:          offerID,
		VendorID:         vendorID,
		Items:            toItemInputs(items),
		CashGapCents:     req.CashGapCents,
		CashGapDirection: req.CashGapDirection,
		Message:          req.Message,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, view)
}

// Get обрабатывает GET /api/offers/:id.
func (h *OfferHandler) Get(c *gin.Context) {
	vendorID, offerID, ok := h.actor(c)
	if !ok {
		return
	}

	view, err := h.offers.Get(c.Request.Context(), offerID, vendorID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, view)
}

// List обрабатывает GET /api/offers.
func (h *OfferHandler) List(c *gin.Context) {
	vendorID, err := common.CurrentVendorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	views, err := h.offers.List(c.Request.Context(), vendorID, c.Query("status"), c.Query("direction"), limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"offers": views, "limit": limit, "offset": offset})
}

// Chain обрабатывает GET /api/offers/:id/chain.
func (h *OfferHandler) Chain(c *gin.Context) {
	vendorID, offerID, ok := h.actor(c)
	if !ok {
		return
	}

	chain, err := h.offers.GetChain(c.Request.Context(), offerID, vendorID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, chain)
}

// Send обрабатывает POST /api/offers/:id/send.
func (h *OfferHandler) Send(c *gin.Context) {
	h.applyAction(c, h.offers.Send)
}

// Accept обрабатывает POST /api/offers/:id/accept.
func (h *OfferHandler) Accept(c *gin.Context) {
	h.applyAction(c, h.offers.Accept)
}

// Reject обрабатывает POST /api/offers/:id/reject.
func (h *OfferHandler) Reject(c *gin.Context) {
	h.applyAction(c, h.offers.Reject)
}

// Cancel обрабатывает POST /api/offers/:id/cancel.
func (h *OfferHandler) Cancel(c *gin.Context) {
	h.applyAction(c, h.offers.Cancel)
}

// Fulfill обрабатывает POST /api/offers/:id/fulfill.
func (h *OfferHandler) Fulfill(c *gin.Context) {
	h.applyAction(c, h.offers.Fulfill)
}

// Counter обрабатывает POST /api/offers/:id/counter.
func (h *OfferHandler) Counter(c *gin.Context) {
	vendorID, offerID, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.CounterOfferRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	items, err := req.ParseItems()
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	view, err := h.offers.Counter(c.Request.Context(), service.CounterOfferInput{
		OfferID:          offerID,
		VendorID:         vendorID,
		Items:            toItemInputs(items),
		CashGapCents:     req.CashGapCents,
		CashGapDirection: req.CashGapDirection,
		Message:          req.Message,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, view)
}

// Dispute обрабатывает POST /api/offers/:id/dispute.
func (h *OfferHandler) Dispute(c *gin.Context) {
	vendorID, offerID, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.DisputeOfferRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	view, err := h.offers.Dispute(c.Request.Context(), offerID, vendorID, req.Reason)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, view)
}

// applyAction — общий путь действий без тела запроса.
func (h *OfferHandler) applyAction(c *gin.Context, action func(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferView, error)) {
	vendorID, offerID, ok := h.actor(c)
	if !ok {
		return
	}

	view, err := action(c.Request.Context(), offerID, vendorID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, view)
}

// actor извлекает продавца и идентификатор предложения из запроса.
func (h *OfferHandler) actor(c *gin.Context) (vendorID, offerID uuid.UUID, ok bool) {
	vendorID, err := common.CurrentVendorID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return uuid.Nil, uuid.Nil, false
	}

	offerID, err = common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return uuid.Nil, uuid.Nil, false
	}

	return vendorID, offerID, true
}

// toItemInputs переводит распарсенные позиции во входы сервиса.
func toItemInputs(items []dto.OfferItemPayload) []service.OfferItemInput {
	inputs := make([]service.OfferItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.OfferItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			IsOffered: item.IsOffered,
		})
	}
	return inputs
}
