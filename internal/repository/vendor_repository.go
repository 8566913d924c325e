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

// ErrVendorNotFound возвращается, когда продавец не найден.
var ErrVendorNotFound = errors.New("vendor not found")

// VendorRepository читает справочник продавцов (только чтение,
// регистрацией и модерацией занимается внешний контур).
type VendorRepository struct {
	db *sqlx.DB
}

// NewVendorRepository создаёт экземпляр репозитория.
func NewVendorRepository(db *sqlx.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// GetByID возвращает продавца по идентификатору.
func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	query := `SELECT id, name, status, is_active, created_at, updated_at FROM vendors WHERE id = $1`
	if err := r.db.GetContext(ctx, &vendor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendor repository: get by id %w", err)
	}
	return &vendor, nil
}

// ListEligible возвращает активных одобренных продавцов, кроме самого
// запрашивающего — кандидатов в контрагенты для нового предложения.
func (r *VendorRepository) ListEligible(ctx context.Context, excludeID uuid.UUID, limit, offset int) ([]models.Vendor, error) {
	var vendors []models.Vendor
	query := `
		SELECT id, name, status, is_active, created_at, updated_at
		FROM vendors
		WHERE status = $1 AND is_active = TRUE AND id <> $2
		ORDER BY name
		LIMIT $3 OFFSET $4
	`
	if err := r.db.SelectContext(ctx, &vendors, query, models.VendorStatusApproved, excludeID, limit, offset); err != nil {
		return nil, fmt.Errorf("vendor repository: list eligible %w", err)
	}
	return vendors, nil
}
