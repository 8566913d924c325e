package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/barter-backend/internal/dto"
	"github.com/ignatzorin/barter-backend/internal/goroutine"
	"github.com/ignatzorin/barter-backend/internal/logger"
	"github.com/ignatzorin/barter-backend/internal/models"
	"github.com/ignatzorin/barter-backend/internal/pkg/apperror"
	"github.com/ignatzorin/barter-backend/internal/repository"
)

// OfferRepository описывает взаимодействие сервиса с хранилищем предложений.
type OfferRepository interface {
	Create(ctx context.Context, offer *models.BarterOffer, items []models.BarterOfferItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BarterOffer, error)
	ListItems(ctx context.Context, offerID uuid.UUID) ([]models.BarterOfferItem, error)
	ListItemsForOffers(ctx context.Context, offerIDs []uuid.UUID) ([]models.BarterOfferItem, error)
	UpdateDraft(ctx context.Context, offer *models.BarterOffer, items []models.BarterOfferItem) error
	TransitionStatus(ctx context.Context, id uuid.UUID, from []string, to string) (*models.BarterOffer, error)
	MarkSent(ctx context.Context, id uuid.UUID, from []string) (*models.BarterOffer, error)
	CreateCounter(ctx context.Context, parentID uuid.UUID, parentFrom []string, child *models.BarterOffer, items []models.BarterOfferItem) error
	Fulfill(ctx context.Context, id uuid.UUID, byInitiator bool) (*models.BarterOffer, error)
	OpenDispute(ctx context.Context, id uuid.UUID, reason string) (*models.BarterOffer, error)
	ResolveDispute(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, resolution, newStatus string) (*models.BarterOffer, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, status, direction string, limit, offset int) ([]models.BarterOffer, error)
	ListChildren(ctx context.Context, offerID uuid.UUID) ([]models.BarterOffer, error)
}

// PriceOracle описывает чтение каталога: владелец товара и его текущая цена.
// Используется только в момент добавления позиций в предложение.
type PriceOracle interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// VendorDirectory описывает чтение справочника продавцов.
type VendorDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	ListEligible(ctx context.Context, excludeID uuid.UUID, limit, offset int) ([]models.Vendor, error)
}

// OfferNotifier интерфейс для отправки WebSocket уведомлений сторонам.
type OfferNotifier interface {
	BroadcastToVendor(vendorID uuid.UUID, event string, data interface{}) error
}

// События жизненного цикла предложения для уведомлений.
const (
	EventOfferReceived  = "offer.received"
	EventOfferAccepted  = "offer.accepted"
	EventOfferRejected  = "offer.rejected"
	EventOfferCountered = "offer.countered"
	EventOfferCancelled = "offer.cancelled"
	EventOfferFulfilled = "offer.fulfilled"
	EventOfferCompleted = "offer.completed"
	EventOfferDisputed  = "offer.disputed"
)

// OfferService содержит бизнес-логику переговоров об обмене: валидацию,
// заморозку цен и вызовы машины состояний.
type OfferService struct {
	offers  OfferRepository
	oracle  PriceOracle
	vendors VendorDirectory
	hub     OfferNotifier
}

// NewOfferService создаёт новый сервис предложений обмена.
func NewOfferService(offers OfferRepository, oracle PriceOracle, vendors VendorDirectory) *OfferService {
	return &OfferService{
		offers:  offers,
		oracle:  oracle,
		vendors: vendors,
	}
}

// SetHub устанавливает WebSocket hub для отправки уведомлений.
func (s *OfferService) SetHub(hub OfferNotifier) {
	s.hub = hub
}

// OfferItemInput описывает позицию во входных данных.
type OfferItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	IsOffered bool
}

// CreateOfferInput описывает входные данные для создания черновика.
type CreateOfferInput struct {
	InitiatorVendorID uuid.UUID
	RecipientVendorID uuid.UUID
	Items             []OfferItemInput
	CashGapCents      int64
	CashGapDirection  *string
	Message           *string
}

// UpdateOfferInput описывает входные данные для изменения черновика.
// Набор позиций заменяется целиком, цены замораживаются заново.
type UpdateOfferInput struct {
	OfferID          uuid.UUID
	VendorID         uuid.UUID
	Items            []OfferItemInput
	CashGapCents     int64
	CashGapDirection *string
	Message          *string
}

// CounterOfferInput описывает входные данные контрпредложения.
type CounterOfferInput struct {
	OfferID          uuid.UUID
	VendorID         uuid.UUID
	Items            []OfferItemInput
	CashGapCents     int64
	CashGapDirection *string
	Message          *string
}

// Create создаёт черновик предложения. Экономические условия принадлежат
// инициатору; позиции проверяются на принадлежность правильной стороне,
// цены замораживаются на момент создания.
func (s *OfferService) Create(ctx context.Context, in CreateOfferInput) (*dto.OfferView, error) {
	if in.InitiatorVendorID == in.RecipientVendorID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя отправить предложение обмена самому себе")
	}
	if err := validateCashGap(in.CashGapCents, in.CashGapDirection); err != nil {
		return nil, err
	}

	recipient, err := s.vendors.GetByID(ctx, in.RecipientVendorID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, apperror.ErrVendorNotFound
		}
		return nil, err
	}
	if !recipient.IsEligibleCounterparty() {
		return nil, apperror.New(apperror.ErrCodeValidation, "продавец-получатель неактивен или не одобрен")
	}

	items, err := s.resolveItems(ctx, in.InitiatorVendorID, in.RecipientVendorID, in.Items)
	if err != nil {
		return nil, err
	}

	offer := &models.BarterOffer{
		InitiatorVendorID: in.InitiatorVendorID,
		RecipientVendorID: in.RecipientVendorID,
		Status:            models.OfferStatusDraft,
		CashGapCents:      in.CashGapCents,
		CashGapDirection:  in.CashGapDirection,
		Message:           in.Message,
	}

	if err := s.offers.Create(ctx, offer, items); err != nil {
		return nil, err
	}

	return dto.NewOfferView(offer, items, in.InitiatorVendorID, s.vendorInfo(ctx, offer.Counterparty(in.InitiatorVendorID))), nil
}

// Update изменяет черновик. Разрешено только инициатору и только пока
// предложение не покинуло статус draft.
func (s *OfferService) Update(ctx context.Context, in UpdateOfferInput) (*dto.OfferView, error) {
	offer, err := s.loadOffer(ctx, in.OfferID)
	if err != nil {
		return nil, err
	}
	if offer.InitiatorVendorID != in.VendorID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "изменять предложение может только его инициатор")
	}
	if offer.Status != models.OfferStatusDraft {
		return nil, transitionConflict("изменить", offer.Status)
	}
	if err := validateCashGap(in.CashGapCents, in.CashGapDirection); err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, offer.InitiatorVendorID, offer.RecipientVendorID, in.Items)
	if err != nil {
		return nil, err
	}

	offer.CashGapCents = in.CashGapCents
	offer.CashGapDirection = in.CashGapDirection
	offer.Message = in.Message

	if err := s.offers.UpdateDraft(ctx, offer, items); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			fresh, loadErr := s.loadOffer(ctx, in.OfferID)
			if loadErr != nil {
				return nil, loadErr
			}
			return nil, transitionConflict("изменить", fresh.Status)
		}
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}

	return dto.NewOfferView(offer, items, in.VendorID, s.vendorInfo(ctx, offer.Counterparty(in.VendorID))), nil
}

// Send переводит черновик в sent и показывает его получателю.
// Требование хотя бы одной позиции проверяется в момент записи: параллельное
// обновление черновика, опустошившее его, отменяет отправку.
func (s *OfferService) Send(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferView, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.InitiatorVendorID != vendorID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отправить предложение может только его инициатор")
	}

	updated, err := s.offers.MarkSent(ctx, offerID, models.OfferActionSources(models.OfferActionSend))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyOffer):
			return nil, apperror.New(apperror.ErrCodeValidation, "нельзя отправить предложение без позиций")
		case errors.Is(err, repository.ErrStatusConflict):
			status := ""
			if updated != nil {
				status = updated.Status
			}
			return nil, transitionConflict("отправить", status)
		case errors.Is(err, repository.ErrOfferNotFound):
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}

	items, err := s.offers.ListItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	s.notify(updated.RecipientVendorID, EventOfferReceived, updated)
	return dto.NewOfferView(updated, items, vendorID, s.vendorInfo(ctx, updated.Counterparty(vendorID))), nil
}

// Accept принимает предложение. Доступно только получателю из sent/countered.
func (s *OfferService) Accept(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferView, error) {
	return s.respond(ctx, offerID, vendorID, models.OfferActionAccept, models.OfferStatusAccepted, "принять", EventOfferAccepted)
}

// Reject отклоняет предложение. Доступно только получателю из sent/countered.
func (s *OfferService) Reject(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferView, error) {
	return s.respond(ctx, offerID, vendorID, models.OfferActionReject, models.OfferStatusRejected, "отклонить", EventOfferRejected)
}

// respond — общий путь accept/reject: проверка получателя и условный переход.
func (s *OfferService) respond(ctx context.Context, offerID, vendorID uuid.UUID, action, target, verb, event string) (*dto.OfferView, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.RecipientVendorID != vendorID {
		return nil, apperror.Newf(apperror.ErrCodeForbidden, "%s предложение может только его получатель", verb)
	}

	updated, err := s.transition(ctx, offerID, action, target, verb)
	if err != nil {
		return nil, err
	}

	items, err := s.offers.ListItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	s.notify(updated.InitiatorVendorID, event, updated)
	return dto.NewOfferView(updated, items, vendorID, s.vendorInfo(ctx, updated.Counterparty(vendorID))), nil
}

// Cancel отменяет предложение. Доступно только инициатору из draft/sent.
func (s *OfferService) Cancel(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferView, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.InitiatorVendorID != vendorID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отменить предложение может только его инициатор")
	}

	wasSent := offer.Status == models.OfferStatusSent

	updated, err := s.transition(ctx, offerID, models.OfferActionCancel, models.OfferStatusCancelled, "отменить")
	if err != nil {
		return nil, err
	}

	items, err := s.offers.ListItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	// Черновик получатель не видел, уведомлять не о чем.
	if wasSent {
		s.notify(updated.RecipientVendorID, EventOfferCancelled, updated)
	}
	return dto.NewOfferView(updated, items, vendorID, s.vendorInfo(ctx, updated.Counterparty(vendorID))), nil
}

// Counter создаёт контрпредложение: предшественник атомарно переводится в
// countered, новая строка создаётся в sent с ролями, поменянными местами.
// Позиции проверяются и замораживаются относительно новых ролей.
func (s *OfferService) Counter(ctx context.Context, in CounterOfferInput) (*dto.OfferView, error) {
	parent, err := s.loadOffer(ctx, in.OfferID)
	if err != nil {
		return nil, err
	}
	if parent.RecipientVendorID != in.VendorID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "ответить контрпредложением может только получатель")
	}
	if !models.CanApplyOfferAction(models.OfferActionCounter, parent.Status) {
		return nil, transitionConflict("ответить контрпредложением на", parent.Status)
	}
	if err := validateCashGap(in.CashGapCents, in.CashGapDirection); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "контрпредложение должно содержать хотя бы одну позицию")
	}

	newInitiator, newRecipient := models.SwapRoles(parent)
	items, err := s.resolveItems(ctx, newInitiator, newRecipient, in.Items)
	if err != nil {
		return nil, err
	}

	parentID := parent.ID
	child := &models.BarterOffer{
		InitiatorVendorID: newInitiator,
		RecipientVendorID: newRecipient,
		Status:            models.OfferStatusSent,
		CashGapCents:      in.CashGapCents,
		CashGapDirection:  in.CashGapDirection,
		ParentOfferID:     &parentID,
		Message:           in.Message,
	}

	err = s.offers.CreateCounter(ctx, parentID, models.OfferActionSources(models.OfferActionCounter), child, items)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			fresh, loadErr := s.loadOffer(ctx, parentID)
			if loadErr != nil {
				return nil, loadErr
			}
			return nil, transitionConflict("ответить контрпредложением на", fresh.Status)
		}
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}

	s.notify(child.RecipientVendorID, EventOfferCountered, child)
	return dto.NewOfferView(child, items, in.VendorID, s.vendorInfo(ctx, child.Counterparty(in.VendorID))), nil
}

// Fulfill фиксирует само-подтверждение исполнения стороной. Первое
// подтверждение переводит accepted в in_progress, второе завершает обмен.
func (s *OfferService) Fulfill(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferView, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.IsParty(vendorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "подтверждать исполнение могут только стороны предложения")
	}

	updated, err := s.offers.Fulfill(ctx, offerID, offer.InitiatorVendorID == vendorID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyFulfilled):
			return nil, apperror.Wrap(err, apperror.ErrCodeConflict, "вы уже подтвердили исполнение по этому предложению")
		case errors.Is(err, models.ErrActionNotAllowed):
			status := offer.Status
			if updated != nil {
				status = updated.Status
			}
			return nil, transitionConflict("подтвердить исполнение по", status)
		case errors.Is(err, repository.ErrOfferNotFound):
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}

	items, err := s.offers.ListItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	event := EventOfferFulfilled
	if updated.Status == models.OfferStatusCompleted {
		event = EventOfferCompleted
	}
	s.notify(updated.Counterparty(vendorID), event, updated)

	return dto.NewOfferView(updated, items, vendorID, s.vendorInfo(ctx, updated.Counterparty(vendorID))), nil
}

// Dispute поднимает спор по принятому или исполняемому предложению.
// Дальнейшие переходы возможны только решением арбитра.
func (s *OfferService) Dispute(ctx context.Context, offerID, vendorID uuid.UUID, reason string) (*dto.OfferView, error) {
	if reason == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "причина спора не может быть пустой")
	}

	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.IsParty(vendorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "открыть спор могут только стороны предложения")
	}

	updated, err := s.offers.OpenDispute(ctx, offerID, reason)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			status := offer.Status
			if updated != nil {
				status = updated.Status
			}
			return nil, transitionConflict("открыть спор по", status)
		}
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}

	items, err := s.offers.ListItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	s.notify(updated.Counterparty(vendorID), EventOfferDisputed, updated)
	return dto.NewOfferView(updated, items, vendorID, s.vendorInfo(ctx, updated.Counterparty(vendorID))), nil
}

// Get возвращает проекцию предложения для одной из его сторон.
func (s *OfferService) Get(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferView, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.IsParty(vendorID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "предложение доступно только его сторонам")
	}

	items, err := s.offers.ListItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	return dto.NewOfferView(offer, items, vendorID, s.vendorInfo(ctx, offer.Counterparty(vendorID))), nil
}

// GetChain возвращает линию переговоров: предшественников до корня и
// прямые контрпредложения.
func (s *OfferService) GetChain(ctx context.Context, offerID, vendorID uuid.UUID) (*dto.OfferChainView, error) {
	view, err := s.Get(ctx, offerID, vendorID)
	if err != nil {
		return nil, err
	}

	chain := &dto.OfferChainView{Offer: view}

	// Вверх по parent_offer_id до корневого предложения.
	cursor := view.BarterOffer
	for cursor.ParentOfferID != nil {
		parent, err := s.loadOffer(ctx, *cursor.ParentOfferID)
		if err != nil {
			return nil, err
		}
		chain.Ancestors = append(chain.Ancestors, parent)
		cursor = parent
	}

	children, err := s.offers.ListChildren(ctx, offerID)
	if err != nil {
		return nil, err
	}
	for i := range children {
		chain.Children = append(chain.Children, &children[i])
	}

	return chain, nil
}

// List возвращает проекции предложений продавца с фильтрами.
func (s *OfferService) List(ctx context.Context, vendorID uuid.UUID, status, direction string, limit, offset int) ([]*dto.OfferView, error) {
	if status != "" {
		if _, ok := models.ValidOfferStatuses[status]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "некорректный статус в фильтре")
		}
	}
	if direction != "" && direction != "sent" && direction != "received" {
		return nil, apperror.New(apperror.ErrCodeValidation, "направление фильтра должно быть sent или received")
	}

	offers, err := s.offers.ListByVendor(ctx, vendorID, status, direction, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return []*dto.OfferView{}, nil
	}

	ids := make([]uuid.UUID, len(offers))
	for i := range offers {
		ids[i] = offers[i].ID
	}
	allItems, err := s.offers.ListItemsForOffers(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByOffer := make(map[uuid.UUID][]models.BarterOfferItem, len(offers))
	for _, item := range allItems {
		itemsByOffer[item.OfferID] = append(itemsByOffer[item.OfferID], item)
	}

	// Контрагенты часто повторяются, справочник читаем по одному разу.
	infoCache := make(map[uuid.UUID]*dto.VendorInfo)
	views := make([]*dto.OfferView, 0, len(offers))
	for i := range offers {
		offer := &offers[i]
		other := offer.Counterparty(vendorID)
		info, ok := infoCache[other]
		if !ok {
			info = s.vendorInfo(ctx, other)
			infoCache[other] = info
		}
		views = append(views, dto.NewOfferView(offer, itemsByOffer[offer.ID], vendorID, info))
	}
	return views, nil
}

// ListEligibleVendors возвращает кандидатов в контрагенты.
func (s *OfferService) ListEligibleVendors(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]models.Vendor, error) {
	return s.vendors.ListEligible(ctx, vendorID, limit, offset)
}

// transition — общий путь условного перехода с единым видом ошибки:
// проигравший гонку получает ту же ошибку, что и последовательное
// нарушение порядка действий.
func (s *OfferService) transition(ctx context.Context, offerID uuid.UUID, action, target, verb string) (*models.BarterOffer, error) {
	updated, err := s.offers.TransitionStatus(ctx, offerID, models.OfferActionSources(action), target)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			status := ""
			if updated != nil {
				status = updated.Status
			}
			return nil, transitionConflict(verb, status)
		}
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}
	return updated, nil
}

// loadOffer читает предложение и переводит ошибку хранилища в доменную.
func (s *OfferService) loadOffer(ctx context.Context, offerID uuid.UUID) (*models.BarterOffer, error) {
	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

// resolveItems проверяет позиции и замораживает цены из прайс-оракула.
// Нарушение принадлежности любой позиции отклоняет всё действие целиком.
func (s *OfferService) resolveItems(ctx context.Context, initiatorID, recipientID uuid.UUID, inputs []OfferItemInput) ([]models.BarterOfferItem, error) {
	items := make([]models.BarterOfferItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, apperror.New(apperror.ErrCodeValidation, "количество в позиции должно быть положительным")
		}

		product, err := s.oracle.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, apperror.Newf(apperror.ErrCodeNotFound, "товар %s не найден", in.ProductID)
			}
			return nil, err
		}
		if !product.IsTradeable() {
			return nil, apperror.Newf(apperror.ErrCodeValidation, "товар %q удалён или недоступен для обмена", product.Title)
		}

		owner := recipientID
		if in.IsOffered {
			owner = initiatorID
		}
		if product.VendorID != owner {
			return nil, apperror.Newf(apperror.ErrCodeValidation, "товар %q не принадлежит нужной стороне предложения", product.Title)
		}

		items = append(items, models.BarterOfferItem{
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			ValueCents: product.PriceCents,
			IsOffered:  in.IsOffered,
		})
	}
	return items, nil
}

// vendorInfo возвращает публичную карточку продавца, nil при любой ошибке:
// отсутствие карточки контрагента не должно ломать выдачу предложения.
func (s *OfferService) vendorInfo(ctx context.Context, vendorID uuid.UUID) *dto.VendorInfo {
	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil
	}
	return &dto.VendorInfo{ID: vendor.ID, Name: vendor.Name}
}

// notify отправляет событие стороне, не блокируя основной путь.
func (s *OfferService) notify(vendorID uuid.UUID, event string, offer *models.BarterOffer) {
	if s.hub == nil {
		return
	}
	hub := s.hub
	goroutine.SafeGo(func() {
		if err := hub.BroadcastToVendor(vendorID, event, offer); err != nil && logger.Log != nil {
			logger.Log.Warnf("offer service: не удалось отправить уведомление %s: %v", event, err)
		}
	})
}

// validateCashGap проверяет инвариант доплаты: направление задано тогда и
// только тогда, когда сумма доплаты больше нуля.
func validateCashGap(cents int64, direction *string) error {
	if cents < 0 {
		return apperror.New(apperror.ErrCodeValidation, "сумма доплаты не может быть отрицательной")
	}
	if cents > 0 && direction == nil {
		return apperror.New(apperror.ErrCodeValidation, "при ненулевой доплате требуется её направление")
	}
	if cents == 0 && direction != nil {
		return apperror.New(apperror.ErrCodeValidation, "направление доплаты задаётся только при ненулевой сумме")
	}
	if direction != nil {
		if _, ok := models.ValidCashGapDirections[*direction]; !ok {
			return apperror.New(apperror.ErrCodeValidation, "некорректное направление доплаты")
		}
	}
	return nil
}

// transitionConflict формирует ошибку недопустимого перехода с текущим
// статусом, чтобы вызывающая сторона могла пересинхронизироваться.
func transitionConflict(verb, status string) *apperror.AppError {
	return apperror.New(apperror.ErrCodeConflict,
		fmt.Sprintf("нельзя %s предложение в текущем статусе (%s)", verb, status))
}
