package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/barter-backend/internal/models"
)

// Ошибки уровня репозитория.
var (
	ErrOfferNotFound = errors.New("barter offer not found")
	// ErrStatusConflict возвращается, когда условный UPDATE не прошёл по статусу:
	// либо переход недопустим, либо конкурирующий запрос успел изменить строку.
	// Обе ситуации для вызывающего кода выглядят одинаково.
	ErrStatusConflict = errors.New("offer status precondition failed")
	// ErrEmptyOffer возвращается, когда предложение без позиций пытаются
	// вывести из черновика.
	ErrEmptyOffer = errors.New("offer has no items")
)

const offerColumns = `
	id, initiator_vendor_id, recipient_vendor_id, status,
	cash_gap_cents, cash_gap_direction, parent_offer_id, message,
	fulfilled_by_initiator, fulfilled_by_recipient,
	dispute_reason, dispute_resolved_by, dispute_resolution,
	created_at, updated_at`

// OfferRepository отвечает за строки предложений обмена и их позиции.
// Таблицы barter_offers и barter_offer_items принадлежат движку эксклюзивно.
type OfferRepository struct {
	db *sqlx.DB
}

// NewOfferRepository создаёт новый экземпляр.
func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// GetByID возвращает предложение по идентификатору.
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BarterOffer, error) {
	var offer models.BarterOffer
	query := `SELECT ` + offerColumns + ` FROM barter_offers WHERE id = $1`
	if err := r.db.GetContext(ctx, &offer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("offer repository: get by id %w", err)
	}
	return &offer, nil
}

// ListItems возвращает позиции предложения в порядке добавления.
func (r *OfferRepository) ListItems(ctx context.Context, offerID uuid.UUID) ([]models.BarterOfferItem, error) {
	var items []models.BarterOfferItem
	query := `
		SELECT id, offer_id, product_id, quantity, value_cents, is_offered
		FROM barter_offer_items
		WHERE offer_id = $1
		ORDER BY created_at, id
	`
	if err := r.db.SelectContext(ctx, &items, query, offerID); err != nil {
		return nil, fmt.Errorf("offer repository: list items %w", err)
	}
	return items, nil
}

// ListItemsForOffers возвращает позиции сразу нескольких предложений одним запросом.
func (r *OfferRepository) ListItemsForOffers(ctx context.Context, offerIDs []uuid.UUID) ([]models.BarterOfferItem, error) {
	if len(offerIDs) == 0 {
		return nil, nil
	}
	var items []models.BarterOfferItem
	query := `
		SELECT id, offer_id, product_id, quantity, value_cents, is_offered
		FROM barter_offer_items
		WHERE offer_id = ANY($1)
		ORDER BY offer_id, created_at, id
	`
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(offerIDs)); err != nil {
		return nil, fmt.Errorf("offer repository: list items for offers %w", err)
	}
	return items, nil
}

// Create сохраняет черновик предложения вместе с позициями в одной транзакции.
func (r *OfferRepository) Create(ctx context.Context, offer *models.BarterOffer, items []models.BarterOfferItem) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("offer repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = insertOfferTx(ctx, tx, offer); err != nil {
		return err
	}
	if err = insertItemsTx(ctx, tx, offer.ID, items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("offer repository: commit %w", err)
	}
	return nil
}

// UpdateDraft заменяет экономические условия черновика: условия доплаты,
// сообщение и полный набор позиций (delete-all, re-create). Переход возможен
// только пока строка остаётся в статусе draft на момент записи.
func (r *OfferRepository) UpdateDraft(ctx context.Context, offer *models.BarterOffer, items []models.BarterOfferItem) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("offer repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		UPDATE barter_offers
		SET cash_gap_cents = $1,
		    cash_gap_direction = $2,
		    message = $3,
		    updated_at = NOW()
		WHERE id = $4 AND status = $5
		RETURNING updated_at
	`
	err = tx.QueryRowxContext(ctx, query,
		offer.CashGapCents,
		offer.CashGapDirection,
		offer.Message,
		offer.ID,
		models.OfferStatusDraft,
	).Scan(&offer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = r.classifyMiss(ctx, offer.ID)
		} else {
			err = fmt.Errorf("offer repository: update draft %w", err)
		}
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM barter_offer_items WHERE offer_id = $1`, offer.ID); err != nil {
		return fmt.Errorf("offer repository: clear items %w", err)
	}
	if err = insertItemsTx(ctx, tx, offer.ID, items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("offer repository: commit %w", err)
	}
	return nil
}

// TransitionStatus выполняет compare-and-transition: статус меняется на to
// только если на момент записи строка находится в одном из статусов from.
// При промахе возвращается свежая строка и ErrStatusConflict, чтобы вызывающий
// код мог назвать текущий статус в ошибке.
func (r *OfferRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []string, to string) (*models.BarterOffer, error) {
	var offer models.BarterOffer
	query := `
		UPDATE barter_offers
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
		RETURNING` + offerColumns
	err := r.db.QueryRowxContext(ctx, query, to, id, pq.Array(from)).StructScan(&offer)
	if err == nil {
		return &offer, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("offer repository: transition status %w", err)
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return current, ErrStatusConflict
}

// MarkSent переводит черновик в sent. Требование хотя бы одной позиции
// проверяется в том же UPDATE через EXISTS: конкурентное обновление,
// опустошившее предложение между чтением и записью, не даст его отправить.
// При промахе возвращается свежая строка и ErrStatusConflict либо
// ErrEmptyOffer, если статус подходил, но позиций не оказалось.
func (r *OfferRepository) MarkSent(ctx context.Context, id uuid.UUID, from []string) (*models.BarterOffer, error) {
	var offer models.BarterOffer
	query := `
		UPDATE barter_offers
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
			AND EXISTS (SELECT 1 FROM barter_offer_items WHERE offer_id = $2)
		RETURNING` + offerColumns
	err := r.db.QueryRowxContext(ctx, query, models.OfferStatusSent, id, pq.Array(from)).StructScan(&offer)
	if err == nil {
		return &offer, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("offer repository: mark sent %w", err)
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	for _, status := range from {
		if current.Status == status {
			return current, ErrEmptyOffer
		}
	}
	return current, ErrStatusConflict
}

// CreateCounter атомарно переводит предшественника в countered и создаёт
// дочернее предложение со своими позициями. Частичное применение (предшественник
// помечен, а дочерняя строка не создана) исключено транзакцией.
func (r *OfferRepository) CreateCounter(ctx context.Context, parentID uuid.UUID, parentFrom []string, child *models.BarterOffer, items []models.BarterOfferItem) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("offer repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE barter_offers
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
	`, models.OfferStatusCountered, parentID, pq.Array(parentFrom))
	if err != nil {
		return fmt.Errorf("offer repository: mark predecessor countered %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("offer repository: rows affected %w", err)
	}
	if affected == 0 {
		err = r.classifyMiss(ctx, parentID)
		return err
	}

	if err = insertOfferTx(ctx, tx, child); err != nil {
		return err
	}
	if err = insertItemsTx(ctx, tx, child.ID, items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("offer repository: commit %w", err)
	}
	return nil
}

// Fulfill подтверждает исполнение одной стороной. Строка блокируется
// FOR UPDATE, решение о новом статусе принимается под блокировкой, поэтому
// гонки двух fulfill сериализуются: повторное подтверждение той же стороной
// проигрывает, подтверждения разных сторон сходятся в completed независимо
// от порядка.
func (r *OfferRepository) Fulfill(ctx context.Context, id uuid.UUID, byInitiator bool) (*models.BarterOffer, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("offer repository: begin tx %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var offer models.BarterOffer
	query := `SELECT ` + offerColumns + ` FROM barter_offers WHERE id = $1 FOR UPDATE`
	if err = tx.GetContext(ctx, &offer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrOfferNotFound
			return nil, err
		}
		err = fmt.Errorf("offer repository: lock offer %w", err)
		return nil, err
	}

	outcome, decErr := models.ResolveFulfillment(offer.Status, byInitiator, offer.FulfilledByInitiator, offer.FulfilledByRecipient)
	if decErr != nil {
		err = decErr
		return &offer, decErr
	}

	err = tx.QueryRowxContext(ctx, `
		UPDATE barter_offers
		SET status = $1,
		    fulfilled_by_initiator = $2,
		    fulfilled_by_recipient = $3,
		    updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`, outcome.NewStatus, outcome.FulfilledByInitiator, outcome.FulfilledByRecipient, id).Scan(&offer.UpdatedAt)
	if err != nil {
		err = fmt.Errorf("offer repository: apply fulfillment %w", err)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("offer repository: commit %w", err)
	}

	offer.Status = outcome.NewStatus
	offer.FulfilledByInitiator = outcome.FulfilledByInitiator
	offer.FulfilledByRecipient = outcome.FulfilledByRecipient
	return &offer, nil
}

// OpenDispute переводит предложение в disputed с фиксацией причины.
func (r *OfferRepository) OpenDispute(ctx context.Context, id uuid.UUID, reason string) (*models.BarterOffer, error) {
	var offer models.BarterOffer
	query := `
		UPDATE barter_offers
		SET status = $1, dispute_reason = $2, updated_at = NOW()
		WHERE id = $3 AND status = ANY($4)
		RETURNING` + offerColumns
	err := r.db.QueryRowxContext(ctx, query,
		models.OfferStatusDisputed, reason, id,
		pq.Array(models.OfferActionSources(models.OfferActionDispute)),
	).StructScan(&offer)
	if err == nil {
		return &offer, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("offer repository: open dispute %w", err)
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return current, ErrStatusConflict
}

// ResolveDispute завершает спор решением арбитра. Выйти из disputed можно
// только этим методом.
func (r *OfferRepository) ResolveDispute(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, resolution, newStatus string) (*models.BarterOffer, error) {
	var offer models.BarterOffer
	query := `
		UPDATE barter_offers
		SET status = $1,
		    dispute_resolved_by = $2,
		    dispute_resolution = $3,
		    updated_at = NOW()
		WHERE id = $4 AND status = $5
		RETURNING` + offerColumns
	err := r.db.QueryRowxContext(ctx, query,
		newStatus, resolvedBy, resolution, id, models.OfferStatusDisputed,
	).StructScan(&offer)
	if err == nil {
		return &offer, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("offer repository: resolve dispute %w", err)
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return current, ErrStatusConflict
}

// ListByVendor возвращает предложения продавца с фильтрами по статусу и
// направлению (sent — где он инициатор, received — где получатель).
func (r *OfferRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, status, direction string, limit, offset int) ([]models.BarterOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM barter_offers WHERE `
	args := []interface{}{vendorID}

	switch direction {
	case "sent":
		query += `initiator_vendor_id = $1`
	case "received":
		query += `recipient_vendor_id = $1`
	default:
		query += `(initiator_vendor_id = $1 OR recipient_vendor_id = $1)`
	}

	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	var offers []models.BarterOffer
	if err := r.db.SelectContext(ctx, &offers, query, args...); err != nil {
		return nil, fmt.Errorf("offer repository: list by vendor %w", err)
	}
	return offers, nil
}

// ListChildren возвращает прямые контрпредложения данного предложения.
func (r *OfferRepository) ListChildren(ctx context.Context, offerID uuid.UUID) ([]models.BarterOffer, error) {
	var offers []models.BarterOffer
	query := `SELECT ` + offerColumns + ` FROM barter_offers WHERE parent_offer_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &offers, query, offerID); err != nil {
		return nil, fmt.Errorf("offer repository: list children %w", err)
	}
	return offers, nil
}

// classifyMiss различает "строки нет" и "строка есть, но статус не подошёл".
func (r *OfferRepository) classifyMiss(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusConflict
}

// insertOfferTx сохраняет строку предложения и читает сгенерированные поля.
func insertOfferTx(ctx context.Context, tx *sqlx.Tx, offer *models.BarterOffer) error {
	query := `
		INSERT INTO barter_offers (
			initiator_vendor_id, recipient_vendor_id, status,
			cash_gap_cents, cash_gap_direction, parent_offer_id, message
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRowxContext(ctx, query,
		offer.InitiatorVendorID,
		offer.RecipientVendorID,
		offer.Status,
		offer.CashGapCents,
		offer.CashGapDirection,
		offer.ParentOfferID,
		offer.Message,
	).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt); err != nil {
		return fmt.Errorf("offer repository: insert offer %w", err)
	}
	return nil
}

// insertItemsTx сохраняет позиции одним batch INSERT (устранение N+1).
func insertItemsTx(ctx context.Context, tx *sqlx.Tx, offerID uuid.UUID, items []models.BarterOfferItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `INSERT INTO barter_offer_items (offer_id, product_id, quantity, value_cents, is_offered) VALUES `
	values := make([]interface{}, 0, len(items)*5)
	for i, item := range items {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)
		values = append(values, offerID, item.ProductID, item.Quantity, item.ValueCents, item.IsOffered)
	}
	query += " RETURNING id"

	rows, err := tx.QueryxContext(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("offer repository: batch insert items %w", err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(&items[i].ID); err != nil {
			return fmt.Errorf("offer repository: scan item id %w", err)
		}
		items[i].OfferID = offerID
	}
	return rows.Err()
}
