package dto

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/barter-backend/internal/models"
)

// OfferItemView представляет позицию предложения с посчитанной стоимостью.
type OfferItemView struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      int       `json:"quantity"`
	ValueCents    int64     `json:"value_cents"`
	SubtotalCents int64     `json:"subtotal_cents"`
}

// VendorInfo представляет публичную информацию о контрагенте.
type VendorInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OfferView — проекция предложения относительно смотрящего продавца.
// Чистое read-side преобразование: считает тоталы по замороженным ценам
// и делит позиции на отдаваемые/запрашиваемые, не трогая хранимое состояние.
type OfferView struct {
	*models.BarterOffer
	IsInitiator         bool            `json:"is_initiator"`
	OfferedItems        []OfferItemView `json:"offered_items"`
	RequestedItems      []OfferItemView `json:"requested_items"`
	OfferedTotalCents   int64           `json:"offered_total_cents"`
	RequestedTotalCents int64           `json:"requested_total_cents"`
	Counterparty        *VendorInfo     `json:"counterparty,omitempty"`
}

// NewOfferView строит проекцию предложения для продавца viewerID.
// counterparty может быть nil (например, в списках без загрузки справочника).
func NewOfferView(offer *models.BarterOffer, items []models.BarterOfferItem, viewerID uuid.UUID, counterparty *VendorInfo) *OfferView {
	view := &OfferView{
		BarterOffer:    offer,
		IsInitiator:    offer.InitiatorVendorID == viewerID,
		OfferedItems:   []OfferItemView{},
		RequestedItems: []OfferItemView{},
		Counterparty:   counterparty,
	}

	for _, item := range items {
		iv := OfferItemView{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			ValueCents:    item.ValueCents,
			SubtotalCents: item.SubtotalCents(),
		}
		if item.IsOffered {
			view.OfferedItems = append(view.OfferedItems, iv)
			view.OfferedTotalCents += iv.SubtotalCents
		} else {
			view.RequestedItems = append(view.RequestedItems, iv)
			view.RequestedTotalCents += iv.SubtotalCents
		}
	}

	return view
}

// OfferChainView представляет линию переговоров вокруг предложения:
// цепочка предшественников от корня и прямые контрпредложения.
type OfferChainView struct {
	Offer     *OfferView            `json:"offer"`
	Ancestors []*models.BarterOffer `json:"ancestors"`
	Children  []*models.BarterOffer `json:"children"`
}
