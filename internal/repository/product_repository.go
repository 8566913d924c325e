package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/barter-backend/internal/models"
)

// ErrProductNotFound возвращается, когда товар не найден.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository читает каталог товаров. Для движка обмена это
// прайс-оракул: только чтение, записи в products отсюда не выполняются.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository создаёт экземпляр репозитория.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID возвращает товар вместе с владельцем и текущей ценой.
// Мягко удалённые товары тоже возвращаются: решение о допустимости
// принимает валидатор по полю deleted_at.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	query := `
		SELECT id, vendor_id, title, price_cents, is_available, deleted_at, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("product repository: get by id %w", err)
	}
	return &product, nil
}
