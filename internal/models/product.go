package models

import (
	"time"

	"github.com/google/uuid"
)

// Product описывает товар из каталога.
// Для движка обмена каталог — внешний прайс-оракул: цена читается один раз
// при добавлении позиции в предложение и замораживается в value_cents.
type Product struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	VendorID    uuid.UUID  `db:"vendor_id" json:"vendor_id"`
	Title       string     `db:"title" json:"title"`
	PriceCents  int64      `db:"price_cents" json:"price_cents"`
	IsAvailable bool       `db:"is_available" json:"is_available"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// IsTradeable сообщает, можно ли включать товар в новое предложение обмена.
func (p *Product) IsTradeable() bool {
	return p.DeletedAt == nil && p.IsAvailable
}
