package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor описывает продавца на площадке.
// Движок обмена читает продавцов только для проверки допустимости контрагента,
// записи в эту таблицу выполняет внешний контур регистрации.
type Vendor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Status    string    `db:"status" json:"status"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsEligibleCounterparty сообщает, можно ли отправлять этому продавцу предложения обмена.
func (v *Vendor) IsEligibleCounterparty() bool {
	return v.Status == VendorStatusApproved && v.IsActive
}
