package dto

import (
	"fmt"

	"github.com/google/uuid"
)

// OfferItemRequest описывает одну позицию в теле запроса.
// is_offered=true — товар инициатора, false — запрашиваемый товар получателя.
type OfferItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	IsOffered bool   `json:"is_offered"`
}

// OfferItemPayload — позиция с распарсенным идентификатором товара.
type OfferItemPayload struct {
	ProductID uuid.UUID
	Quantity  int
	IsOffered bool
}

// OfferTermsRequest — общие экономические условия предложения.
type OfferTermsRequest struct {
	Items            []OfferItemRequest `json:"items"`
	CashGapCents     int64              `json:"cash_gap_cents"`
	CashGapDirection *string            `json:"cash_gap_direction"`
	Message          *string            `json:"message"`
}

// ParseItems проверяет формат идентификаторов товаров в позициях.
func (r *OfferTermsRequest) ParseItems() ([]OfferItemPayload, error) {
	items := make([]OfferItemPayload, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product_id %q не является валидным UUID", item.ProductID)
		}
		items = append(items, OfferItemPayload{
			ProductID: productID,
			Quantity:  item.Quantity,
			IsOffered: item.IsOffered,
		})
	}
	return items, nil
}

// CreateOfferRequest — тело POST /api/offers.
type CreateOfferRequest struct {
	RecipientVendorID string `json:"recipient_vendor_id" binding:"required"`
	OfferTermsRequest
}

// ParseRecipientID проверяет идентификатор получателя.
func (r *CreateOfferRequest) ParseRecipientID() (uuid.UUID, error) {
	recipientID, err := uuid.Parse(r.RecipientVendorID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recipient_vendor_id не является валидным UUID")
	}
	return recipientID, nil
}

// UpdateOfferRequest — тело PUT /api/offers/:id, набор позиций заменяется целиком.
type UpdateOfferRequest struct {
	OfferTermsRequest
}

// CounterOfferRequest — тело POST /api/offers/:id/counter.
type CounterOfferRequest struct {
	OfferTermsRequest
}

// DisputeOfferRequest — тело POST /api/offers/:id/dispute.
type DisputeOfferRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ResolveDisputeRequest — тело POST /api/admin/offers/:id/resolve.
type ResolveDisputeRequest struct {
	Outcome    string `json:"outcome" binding:"required"`
	Resolution string `json:"resolution" binding:"required"`
}
