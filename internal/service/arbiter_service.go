package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/barter-backend/internal/dto"
	"github.com/ignatzorin/barter-backend/internal/models"
	"github.com/ignatzorin/barter-backend/internal/pkg/apperror"
	"github.com/ignatzorin/barter-backend/internal/repository"
)

// Итоги решения арбитра по спору.
const (
	ResolutionComplete = "complete"
	ResolutionCancel   = "cancel"
)

// События арбитража для уведомлений сторон.
const EventOfferResolved = "offer.resolved"

// ArbiterService реализует канал арбитра: полный доступ к спорным
// предложениям и одностороннее закрытие спора.
type ArbiterService struct {
	offers  OfferRepository
	vendors VendorDirectory
	hub     OfferNotifier
}

// NewArbiterService создаёт сервис арбитража.
func NewArbiterService(offers OfferRepository, vendors VendorDirectory) *ArbiterService {
	return &ArbiterService{
		offers:  offers,
		vendors: vendors,
	}
}

// SetHub устанавливает WebSocket hub для уведомлений решений арбитра.
func (s *ArbiterService) SetHub(hub OfferNotifier) {
	s.hub = hub
}

// Inspect возвращает предложение целиком, включая линию переговоров,
// без проверки принадлежности: арбитру видны любые предложения.
func (s *ArbiterService) Inspect(ctx context.Context, offerID uuid.UUID) (*dto.OfferChainView, error) {
	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}

	items, err := s.offers.ListItems(ctx, offerID)
	if err != nil {
		return nil, err
	}

	// Проекция с точки зрения инициатора, арбитр видит обе стороны по ролям.
	var counterparty *dto.VendorInfo
	if vendor, vErr := s.vendors.GetByID(ctx, offer.RecipientVendorID); vErr == nil {
		counterparty = &dto.VendorInfo{ID: vendor.ID, Name: vendor.Name}
	}
	chain := &dto.OfferChainView{
		Offer: dto.NewOfferView(offer, items, offer.InitiatorVendorID, counterparty),
	}

	cursor := offer
	for cursor.ParentOfferID != nil {
		parent, err := s.offers.GetByID(ctx, *cursor.ParentOfferID)
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

// Resolve закрывает спор решением арбитра: complete завершает обмен,
// cancel отменяет его. Это единственный выход из статуса disputed.
func (s *ArbiterService) Resolve(ctx context.Context, offerID, arbiterID uuid.UUID, outcome, resolution string) (*models.BarterOffer, error) {
	if resolution == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "решение арбитра должно содержать обоснование")
	}

	var newStatus string
	switch outcome {
	case ResolutionComplete:
		newStatus = models.OfferStatusCompleted
	case ResolutionCancel:
		newStatus = models.OfferStatusCancelled
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "итог решения должен быть complete или cancel")
	}

	updated, err := s.offers.ResolveDispute(ctx, offerID, arbiterID, resolution, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			status := ""
			if updated != nil {
				status = updated.Status
			}
			return nil, transitionConflict("закрыть спор по", status)
		}
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperror.ErrOfferNotFound
		}
		return nil, err
	}

	s.notifyParties(updated)
	return updated, nil
}

// notifyParties рассылает решение обеим сторонам предложения.
func (s *ArbiterService) notifyParties(offer *models.BarterOffer) {
	if s.hub == nil {
		return
	}
	_ = s.hub.BroadcastToVendor(offer.InitiatorVendorID, EventOfferResolved, offer)
	_ = s.hub.BroadcastToVendor(offer.RecipientVendorID, EventOfferResolved, offer)
}
