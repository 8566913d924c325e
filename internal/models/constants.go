package models

// BarterOfferStatus константы статусов предложений обмена
const (
	OfferStatusDraft      = "draft"
	OfferStatusSent       = "sent"
	OfferStatusCountered  = "countered"
	OfferStatusAccepted   = "accepted"
	OfferStatusRejected   = "rejected"
	OfferStatusCancelled  = "cancelled"
	OfferStatusInProgress = "in_progress"
	OfferStatusCompleted  = "completed"
	OfferStatusDisputed   = "disputed"
)

// CashGapDirection константы направления денежной доплаты
const (
	CashGapInitiatorPays = "initiator_pays"
	CashGapRecipientPays = "recipient_pays"
)

// VendorStatus константы статусов продавцов
const (
	VendorStatusPending   = "pending"
	VendorStatusApproved  = "approved"
	VendorStatusSuspended = "suspended"
)

// ValidOfferStatuses список валидных статусов предложений
var ValidOfferStatuses = map[string]struct{}{
	OfferStatusDraft:      {},
	OfferStatusSent:       {},
	OfferStatusCountered:  {},
	OfferStatusAccepted:   {},
	OfferStatusRejected:   {},
	OfferStatusCancelled:  {},
	OfferStatusInProgress: {},
	OfferStatusCompleted:  {},
	OfferStatusDisputed:   {},
}

// ValidCashGapDirections список валидных направлений доплаты
var ValidCashGapDirections = map[string]struct{}{
	CashGapInitiatorPays: {},
	CashGapRecipientPays: {},
}

// ValidVendorStatuses список валидных статусов продавцов
var ValidVendorStatuses = map[string]struct{}{
	VendorStatusPending:   {},
	VendorStatusApproved:  {},
	VendorStatusSuspended: {},
}
