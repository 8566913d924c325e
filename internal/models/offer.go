package models

import (
	"time"

	"github.com/google/uuid"
)

// BarterOffer описывает предложение обмена между двумя продавцами.
// Каждое контрпредложение — отдельная строка со ссылкой parent_offer_id,
// роли инициатора и получателя в ней поменяны местами.
type BarterOffer struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	InitiatorVendorID    uuid.UUID  `db:"initiator_vendor_id" json:"initiator_vendor_id"`
	RecipientVendorID    uuid.UUID  `db:"recipient_vendor_id" json:"recipient_vendor_id"`
	Status               string     `db:"status" json:"status"`
	CashGapCents         int64      `db:"cash_gap_cents" json:"cash_gap_cents"`
	CashGapDirection     *string    `db:"cash_gap_direction" json:"cash_gap_direction,omitempty"`
	ParentOfferID        *uuid.UUID `db:"parent_offer_id" json:"parent_offer_id,omitempty"`
	Message              *string    `db:"message" json:"message,omitempty"`
	FulfilledByInitiator bool       `db:"fulfilled_by_initiator" json:"fulfilled_by_initiator"`
	FulfilledByRecipient bool       `db:"fulfilled_by_recipient" json:"fulfilled_by_recipient"`
	DisputeReason        *string    `db:"dispute_reason" json:"dispute_reason,omitempty"`
	DisputeResolvedBy    *uuid.UUID `db:"dispute_resolved_by" json:"dispute_resolved_by,omitempty"`
	DisputeResolution    *string    `db:"dispute_resolution" json:"dispute_resolution,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// IsParty сообщает, является ли продавец стороной предложения.
func (o *BarterOffer) IsParty(vendorID uuid.UUID) bool {
	return o.InitiatorVendorID == vendorID || o.RecipientVendorID == vendorID
}

// Counterparty возвращает идентификатор второй стороны относительно vendorID.
func (o *BarterOffer) Counterparty(vendorID uuid.UUID) uuid.UUID {
	if o.InitiatorVendorID == vendorID {
		return o.RecipientVendorID
	}
	return o.InitiatorVendorID
}

// BarterOfferItem описывает одну позицию предложения.
// ValueCents — замороженная цена товара на момент добавления позиции,
// последующие изменения каталога на неё не влияют.
type BarterOfferItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OfferID    uuid.UUID `db:"offer_id" json:"offer_id"`
	ProductID  uuid.UUID `db:"product_id" json:"product_id"`
	Quantity   int       `db:"quantity" json:"quantity"`
	ValueCents int64     `db:"value_cents" json:"value_cents"`
	IsOffered  bool      `db:"is_offered" json:"is_offered"`
}

// SubtotalCents возвращает стоимость позиции с учётом количества.
func (i *BarterOfferItem) SubtotalCents() int64 {
	return i.ValueCents * int64(i.Quantity)
}
