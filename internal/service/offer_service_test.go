package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/barter-backend/internal/models"
	"github.com/ignatzorin/barter-backend/internal/pkg/apperror"
	"github.com/ignatzorin/barter-backend/internal/repository"
)

type mockOfferRepo struct {
	mock.Mock
}

func (m *mockOfferRepo) Create(ctx context.Context, offer *models.BarterOffer, items []models.BarterOfferItem) error {
	args := m.Called(ctx, offer, items)
	return args.Error(0)
}

func (m *mockOfferRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BarterOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarterOffer), args.Error(1)
}

func (m *mockOfferRepo) ListItems(ctx context.Context, offerID uuid.UUID) ([]models.BarterOfferItem, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BarterOfferItem), args.Error(1)
}

func (m *mockOfferRepo) ListItemsForOffers(ctx context.Context, offerIDs []uuid.UUID) ([]models.BarterOfferItem, error) {
	args := m.Called(ctx, offerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BarterOfferItem), args.Error(1)
}

func (m *mockOfferRepo) UpdateDraft(ctx context.Context, offer *models.BarterOffer, items []models.BarterOfferItem) error {
	args := m.Called(ctx, offer, items)
	return args.Error(0)
}

func (m *mockOfferRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from []string, to string) (*models.BarterOffer, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarterOffer), args.Error(1)
}

func (m *mockOfferRepo) MarkSent(ctx context.Context, id uuid.UUID, from []string) (*models.BarterOffer, error) {
	args := m.Called(ctx, id, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarterOffer), args.Error(1)
}

func (m *mockOfferRepo) CreateCounter(ctx context.Context, parentID uuid.UUID, parentFrom []string, child *models.BarterOffer, items []models.BarterOfferItem) error {
	args := m.Called(ctx, parentID, parentFrom, child, items)
	return args.Error(0)
}

func (m *mockOfferRepo) Fulfill(ctx context.Context, id uuid.UUID, byInitiator bool) (*models.BarterOffer, error) {
	args := m.Called(ctx, id, byInitiator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarterOffer), args.Error(1)
}

func (m *mockOfferRepo) OpenDispute(ctx context.Context, id uuid.UUID, reason string) (*models.BarterOffer, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarterOffer), args.Error(1)
}

func (m *mockOfferRepo) ResolveDispute(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, resolution, newStatus string) (*models.BarterOffer, error) {
	args := m.Called(ctx, id, resolvedBy, resolution, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BarterOffer), args.Error(1)
}

func (m *mockOfferRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID, status, direction string, limit, offset int) ([]models.BarterOffer, error) {
	args := m.Called(ctx, vendorID, status, direction, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BarterOffer), args.Error(1)
}

func (m *mockOfferRepo) ListChildren(ctx context.Context, offerID uuid.UUID) ([]models.BarterOffer, error) {
	args := m.Called(ctx, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BarterOffer), args.Error(1)
}

type mockPriceOracle struct {
	mock.Mock
}

func (m *mockPriceOracle) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

type mockVendorDirectory struct {
	mock.Mock
}

func (m *mockVendorDirectory) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *mockVendorDirectory) ListEligible(ctx context.Context, excludeID uuid.UUID, limit, offset int) ([]models.Vendor, error) {
	args := m.Called(ctx, excludeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vendor), args.Error(1)
}

// chanNotifier фиксирует отправленные события для проверки асинхронных уведомлений.
type chanNotifier struct {
	events chan string
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{events: make(chan string, 8)}
}

func (n *chanNotifier) BroadcastToVendor(vendorID uuid.UUID, event string, data interface{}) error {
	n.events <- event
	return nil
}

func (n *chanNotifier) waitEvent(t *testing.T) string {
	t.Helper()
	select {
	case event := <-n.events:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("уведомление не пришло")
		return ""
	}
}

func newTestService() (*OfferService, *mockOfferRepo, *mockPriceOracle, *mockVendorDirectory) {
	offers := new(mockOfferRepo)
	oracle := new(mockPriceOracle)
	vendors := new(mockVendorDirectory)
	return NewOfferService(offers, oracle, vendors), offers, oracle, vendors
}

func approvedVendor(id uuid.UUID) *models.Vendor {
	return &models.Vendor{ID: id, Name: "Лавка", Status: models.VendorStatusApproved, IsActive: true}
}

func TestOfferService_Create_FreezesPrices(t *testing.T) {
	svc, offers, oracle, vendors := newTestService()
	ctx := context.Background()

	initiatorID := uuid.New()
	recipientID := uuid.New()
	offeredProduct := uuid.New()
	requestedProduct := uuid.New()

	vendors.On("GetByID", ctx, recipientID).Return(approvedVendor(recipientID), nil)
	oracle.On("GetByID", ctx, offeredProduct).Return(&models.Product{
		ID: offeredProduct, VendorID: initiatorID, Title: "Самовар", PriceCents: 120_00, IsAvailable: true,
	}, nil)
	oracle.On("GetByID", ctx, requestedProduct).Return(&models.Product{
		ID: requestedProduct, VendorID: recipientID, Title: "Ковёр", PriceCents: 90_00, IsAvailable: true,
	}, nil)

	offers.On("Create", ctx, mock.AnythingOfType("*models.BarterOffer"), mock.AnythingOfType("[]models.BarterOfferItem")).
		Run(func(args mock.Arguments) {
			offer := args.Get(1).(*models.BarterOffer)
			offer.ID = uuid.New()
			items := args.Get(2).([]models.BarterOfferItem)
			assert.Len(t, items, 2)
			assert.Equal(t, int64(120_00), items[0].ValueCents)
			assert.Equal(t, int64(90_00), items[1].ValueCents)
		}).
		Return(nil)

	direction := models.CashGapRecipientPays
	view, err := svc.Create(ctx, CreateOfferInput{
		InitiatorVendorID: initiatorID,
		RecipientVendorID: recipientID,
		Items: []OfferItemInput{
			{ProductID: offeredProduct, Quantity: 1, IsOffered: true},
			{ProductID: requestedProduct, Quantity: 2, IsOffered: false},
		},
		CashGapCents:     30_00,
		CashGapDirection: &direction,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.OfferStatusDraft, view.Status)
	assert.True(t, view.IsInitiator)
	assert.Equal(t, int64(120_00), view.OfferedTotalCents)
	assert.Equal(t, int64(180_00), view.RequestedTotalCents)
	offers.AssertExpectations(t)
}

func TestOfferService_Create_SelfDealing(t *testing.T) {
	svc, _, _, _ := newTestService()
	vendorID := uuid.New()

	_, err := svc.Create(context.Background(), CreateOfferInput{
		InitiatorVendorID: vendorID,
		RecipientVendorID: vendorID,
	})

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "самому себе")
}

func TestOfferService_Create_RecipientNotEligible(t *testing.T) {
	svc, _, _, vendors := newTestService()
	ctx := context.Background()
	recipientID := uuid.New()

	vendors.On("GetByID", ctx, recipientID).Return(&models.Vendor{
		ID: recipientID, Status: models.VendorStatusSuspended, IsActive: true,
	}, nil)

	_, err := svc.Create(ctx, CreateOfferInput{
		InitiatorVendorID: uuid.New(),
		RecipientVendorID: recipientID,
	})

	assert.True(t, apperror.IsValidation(err))
}

func TestOfferService_Create_OwnershipViolation(t *testing.T) {
	svc, _, oracle, vendors := newTestService()
	ctx := context.Background()
	initiatorID := uuid.New()
	recipientID := uuid.New()
	productID := uuid.New()

	vendors.On("GetByID", ctx, recipientID).Return(approvedVendor(recipientID), nil)
	// Товар заявлен как предлагаемый, но принадлежит третьему продавцу.
	oracle.On("GetByID", ctx, productID).Return(&models.Product{
		ID: productID, VendorID: uuid.New(), Title: "Чужой", PriceCents: 100, IsAvailable: true,
	}, nil)

	_, err := svc.Create(ctx, CreateOfferInput{
		InitiatorVendorID: initiatorID,
		RecipientVendorID: recipientID,
		Items:             []OfferItemInput{{ProductID: productID, Quantity: 1, IsOffered: true}},
	})

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "не принадлежит")
}

func TestOfferService_Create_DeletedProduct(t *testing.T) {
	svc, _, oracle, vendors := newTestService()
	ctx := context.Background()
	initiatorID := uuid.New()
	recipientID := uuid.New()
	productID := uuid.New()
	deletedAt := time.Now()

	vendors.On("GetByID", ctx, recipientID).Return(approvedVendor(recipientID), nil)
	oracle.On("GetByID", ctx, productID).Return(&models.Product{
		ID: productID, VendorID: initiatorID, Title: "Снятый", PriceCents: 100, IsAvailable: true, DeletedAt: &deletedAt,
	}, nil)

	_, err := svc.Create(ctx, CreateOfferInput{
		InitiatorVendorID: initiatorID,
		RecipientVendorID: recipientID,
		Items:             []OfferItemInput{{ProductID: productID, Quantity: 1, IsOffered: true}},
	})

	assert.True(t, apperror.IsValidation(err))
}

func TestOfferService_Create_CashGapValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	direction := models.CashGapInitiatorPays

	// Сумма без направления.
	_, err := svc.Create(ctx, CreateOfferInput{
		InitiatorVendorID: uuid.New(),
		RecipientVendorID: uuid.New(),
		CashGapCents:      500,
	})
	assert.True(t, apperror.IsValidation(err))

	// Направление без суммы.
	_, err = svc.Create(ctx, CreateOfferInput{
		InitiatorVendorID: uuid.New(),
		RecipientVendorID: uuid.New(),
		CashGapDirection:  &direction,
	})
	assert.True(t, apperror.IsValidation(err))

	// Отрицательная сумма.
	_, err = svc.Create(ctx, CreateOfferInput{
		InitiatorVendorID: uuid.New(),
		RecipientVendorID: uuid.New(),
		CashGapCents:      -1,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestOfferService_Send_Success(t *testing.T) {
	svc, offers, _, vendors := newTestService()
	ctx := context.Background()
	initiatorID := uuid.New()
	recipientID := uuid.New()
	offerID := uuid.New()

	draft := &models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID, Status: models.OfferStatusDraft,
	}
	sent := &models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID, Status: models.OfferStatusSent,
	}
	items := []models.BarterOfferItem{{ProductID: uuid.New(), Quantity: 1, ValueCents: 100, IsOffered: true}}

	offers.On("GetByID", ctx, offerID).Return(draft, nil)
	offers.On("MarkSent", ctx, offerID, []string{models.OfferStatusDraft}).Return(sent, nil)
	offers.On("ListItems", ctx, offerID).Return(items, nil)
	vendors.On("GetByID", ctx, recipientID).Return(approvedVendor(recipientID), nil)

	hub := newChanNotifier()
	svc.SetHub(hub)

	view, err := svc.Send(ctx, offerID, initiatorID)
	assert.NoError(t, err)
	assert.Equal(t, models.OfferStatusSent, view.Status)
	assert.Equal(t, EventOfferReceived, hub.waitEvent(t))
}

// Проверка на непустоту живёт в самом условном UPDATE: даже если позиции
// стёрли параллельным обновлением черновика уже после чтения, отправка
// отказывает, а не фиксирует пустое предложение.
func TestOfferService_Send_EmptyOffer(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	initiatorID := uuid.New()
	offerID := uuid.New()

	draft := &models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: uuid.New(), Status: models.OfferStatusDraft,
	}
	offers.On("GetByID", ctx, offerID).Return(draft, nil)
	offers.On("MarkSent", ctx, offerID, []string{models.OfferStatusDraft}).Return(draft, repository.ErrEmptyOffer)

	_, err := svc.Send(ctx, offerID, initiatorID)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "без позиций")
	offers.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOfferService_Send_OnlyInitiator(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()
	recipientID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: uuid.New(), RecipientVendorID: recipientID, Status: models.OfferStatusDraft,
	}, nil)

	_, err := svc.Send(ctx, offerID, recipientID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestOfferService_Accept_OnlyRecipient(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()
	initiatorID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: uuid.New(), Status: models.OfferStatusSent,
	}, nil)

	_, err := svc.Accept(ctx, offerID, initiatorID)
	assert.True(t, apperror.IsForbidden(err))
}

// Проигравший гонку получает ту же ошибку, что и последовательное нарушение
// порядка действий, с актуальным статусом в сообщении.
func TestOfferService_Accept_StatusConflict(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()
	initiatorID := uuid.New()
	recipientID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID, Status: models.OfferStatusSent,
	}, nil)
	// Конкурент успел отменить предложение: условный UPDATE вернул свежую строку и конфликт.
	offers.On("TransitionStatus", ctx, offerID, []string{models.OfferStatusSent, models.OfferStatusCountered}, models.OfferStatusAccepted).
		Return(&models.BarterOffer{
			ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID, Status: models.OfferStatusCancelled,
		}, repository.ErrStatusConflict)

	_, err := svc.Accept(ctx, offerID, recipientID)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), models.OfferStatusCancelled)
}

func TestOfferService_Counter_SwapsRoles(t *testing.T) {
	svc, offers, oracle, vendors := newTestService()
	ctx := context.Background()
	parentID := uuid.New()
	initiatorID := uuid.New()
	recipientID := uuid.New()
	productID := uuid.New()

	offers.On("GetByID", ctx, parentID).Return(&models.BarterOffer{
		ID: parentID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID, Status: models.OfferStatusSent,
	}, nil)
	// В контрпредложении получатель становится инициатором, его товар — предлагаемым.
	oracle.On("GetByID", ctx, productID).Return(&models.Product{
		ID: productID, VendorID: recipientID, Title: "Ковёр", PriceCents: 200, IsAvailable: true,
	}, nil)
	vendors.On("GetByID", ctx, initiatorID).Return(approvedVendor(initiatorID), nil)

	offers.On("CreateCounter", ctx, parentID, []string{models.OfferStatusSent, models.OfferStatusCountered},
		mock.AnythingOfType("*models.BarterOffer"), mock.AnythingOfType("[]models.BarterOfferItem")).
		Run(func(args mock.Arguments) {
			child := args.Get(3).(*models.BarterOffer)
			child.ID = uuid.New()
			assert.Equal(t, recipientID, child.InitiatorVendorID)
			assert.Equal(t, initiatorID, child.RecipientVendorID)
			assert.Equal(t, models.OfferStatusSent, child.Status)
			assert.Equal(t, parentID, *child.ParentOfferID)
		}).
		Return(nil)

	view, err := svc.Counter(ctx, CounterOfferInput{
		OfferID:  parentID,
		VendorID: recipientID,
		Items:    []OfferItemInput{{ProductID: productID, Quantity: 1, IsOffered: true}},
	})

	assert.NoError(t, err)
	assert.True(t, view.IsInitiator)
	offers.AssertExpectations(t)
}

func TestOfferService_Counter_OnlyRecipient(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	parentID := uuid.New()
	initiatorID := uuid.New()

	offers.On("GetByID", ctx, parentID).Return(&models.BarterOffer{
		ID: parentID, InitiatorVendorID: initiatorID, RecipientVendorID: uuid.New(), Status: models.OfferStatusSent,
	}, nil)

	_, err := svc.Counter(ctx, CounterOfferInput{
		OfferID:  parentID,
		VendorID: initiatorID,
		Items:    []OfferItemInput{{ProductID: uuid.New(), Quantity: 1, IsOffered: true}},
	})
	assert.True(t, apperror.IsForbidden(err))
}

func TestOfferService_Counter_WrongStatus(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	parentID := uuid.New()
	recipientID := uuid.New()

	offers.On("GetByID", ctx, parentID).Return(&models.BarterOffer{
		ID: parentID, InitiatorVendorID: uuid.New(), RecipientVendorID: recipientID, Status: models.OfferStatusAccepted,
	}, nil)

	_, err := svc.Counter(ctx, CounterOfferInput{
		OfferID:  parentID,
		VendorID: recipientID,
		Items:    []OfferItemInput{{ProductID: uuid.New(), Quantity: 1, IsOffered: true}},
	})
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), models.OfferStatusAccepted)
}

func TestOfferService_Fulfill_Completes(t *testing.T) {
	svc, offers, _, vendors := newTestService()
	ctx := context.Background()
	offerID := uuid.New()
	initiatorID := uuid.New()
	recipientID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID,
		Status: models.OfferStatusInProgress, FulfilledByInitiator: true,
	}, nil)
	offers.On("Fulfill", ctx, offerID, false).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID,
		Status: models.OfferStatusCompleted, FulfilledByInitiator: true, FulfilledByRecipient: true,
	}, nil)
	offers.On("ListItems", ctx, offerID).Return([]models.BarterOfferItem{}, nil)
	vendors.On("GetByID", ctx, initiatorID).Return(approvedVendor(initiatorID), nil)

	hub := newChanNotifier()
	svc.SetHub(hub)

	view, err := svc.Fulfill(ctx, offerID, recipientID)
	assert.NoError(t, err)
	assert.Equal(t, models.OfferStatusCompleted, view.Status)
	assert.Equal(t, EventOfferCompleted, hub.waitEvent(t))
}

func TestOfferService_Fulfill_AlreadyConfirmed(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()
	initiatorID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: uuid.New(),
		Status: models.OfferStatusInProgress, FulfilledByInitiator: true,
	}, nil)
	offers.On("Fulfill", ctx, offerID, true).Return(nil, models.ErrAlreadyFulfilled)

	_, err := svc.Fulfill(ctx, offerID, initiatorID)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "уже подтвердили")
	assert.ErrorIs(t, err, models.ErrAlreadyFulfilled)
}

func TestOfferService_Fulfill_OnlyParties(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: uuid.New(), RecipientVendorID: uuid.New(), Status: models.OfferStatusAccepted,
	}, nil)

	_, err := svc.Fulfill(ctx, offerID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
}

func TestOfferService_Dispute_EmptyReason(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Dispute(context.Background(), uuid.New(), uuid.New(), "")
	assert.True(t, apperror.IsValidation(err))
}

func TestOfferService_Dispute_Success(t *testing.T) {
	svc, offers, _, vendors := newTestService()
	ctx := context.Background()
	offerID := uuid.New()
	initiatorID := uuid.New()
	recipientID := uuid.New()
	reason := "товар не передан"

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID, Status: models.OfferStatusInProgress,
	}, nil)
	offers.On("OpenDispute", ctx, offerID, reason).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID,
		Status: models.OfferStatusDisputed, DisputeReason: &reason,
	}, nil)
	offers.On("ListItems", ctx, offerID).Return([]models.BarterOfferItem{}, nil)
	vendors.On("GetByID", ctx, recipientID).Return(approvedVendor(recipientID), nil)

	view, err := svc.Dispute(ctx, offerID, initiatorID, reason)
	assert.NoError(t, err)
	assert.Equal(t, models.OfferStatusDisputed, view.Status)
	assert.Equal(t, reason, *view.DisputeReason)
}

func TestOfferService_Get_OnlyParties(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: uuid.New(), RecipientVendorID: uuid.New(), Status: models.OfferStatusSent,
	}, nil)

	_, err := svc.Get(ctx, offerID, uuid.New())
	assert.True(t, apperror.IsForbidden(err))
}

func TestOfferService_Get_NotFound(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(nil, repository.ErrOfferNotFound)

	_, err := svc.Get(ctx, offerID, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestOfferService_List_InvalidFilters(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.List(ctx, uuid.New(), "nonsense", "", 20, 0)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.List(ctx, uuid.New(), "", "sideways", 20, 0)
	assert.True(t, apperror.IsValidation(err))
}

func TestOfferService_List_ProjectsViews(t *testing.T) {
	svc, offers, _, vendors := newTestService()
	ctx := context.Background()
	vendorID := uuid.New()
	otherID := uuid.New()
	offerID := uuid.New()

	offers.On("ListByVendor", ctx, vendorID, "", "", 20, 0).Return([]models.BarterOffer{
		{ID: offerID, InitiatorVendorID: vendorID, RecipientVendorID: otherID, Status: models.OfferStatusSent},
	}, nil)
	offers.On("ListItemsForOffers", ctx, []uuid.UUID{offerID}).Return([]models.BarterOfferItem{
		{OfferID: offerID, ProductID: uuid.New(), Quantity: 1, ValueCents: 500, IsOffered: true},
	}, nil)
	vendors.On("GetByID", ctx, otherID).Return(approvedVendor(otherID), nil)

	views, err := svc.List(ctx, vendorID, "", "", 20, 0)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.True(t, views[0].IsInitiator)
	assert.Equal(t, int64(500), views[0].OfferedTotalCents)
}

func TestOfferService_Update_NotDraft(t *testing.T) {
	svc, offers, _, _ := newTestService()
	ctx := context.Background()
	offerID := uuid.New()
	initiatorID := uuid.New()

	offers.On("GetByID", ctx, offerID).Return(&models.BarterOffer{
		ID: offerID, InitiatorVendorID: initiatorID, RecipientVendorID: uuid.New(), Status: models.OfferStatusSent,
	}, nil)

	_, err := svc.Update(ctx, UpdateOfferInput{OfferID: offerID, VendorID: initiatorID})
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), models.OfferStatusSent)
}

func TestOfferService_GetChain(t *testing.T) {
	svc, offers, _, vendors := newTestService()
	ctx := context.Background()
	rootID := uuid.New()
	childID := uuid.New()
	initiatorID := uuid.New()
	recipientID := uuid.New()

	parentID := rootID
	offers.On("GetByID", ctx, childID).Return(&models.BarterOffer{
		ID: childID, InitiatorVendorID: recipientID, RecipientVendorID: initiatorID,
		Status: models.OfferStatusSent, ParentOfferID: &parentID,
	}, nil)
	offers.On("GetByID", ctx, rootID).Return(&models.BarterOffer{
		ID: rootID, InitiatorVendorID: initiatorID, RecipientVendorID: recipientID, Status: models.OfferStatusCountered,
	}, nil)
	offers.On("ListItems", ctx, childID).Return([]models.BarterOfferItem{}, nil)
	offers.On("ListChildren", ctx, childID).Return([]models.BarterOffer{}, nil)
	vendors.On("GetByID", ctx, mock.Anything).Return(approvedVendor(uuid.New()), nil)

	chain, err := svc.GetChain(ctx, childID, initiatorID)
	assert.NoError(t, err)
	assert.Len(t, chain.Ancestors, 1)
	assert.Equal(t, rootID, chain.Ancestors[0].ID)
	assert.Empty(t, chain.Children)
}
