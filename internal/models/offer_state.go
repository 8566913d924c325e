package models

import (
	"errors"

	"github.com/google/uuid"
)

// Действия над предложением обмена.
const (
	OfferActionSend    = "send"
	OfferActionAccept  = "accept"
	OfferActionReject  = "reject"
	OfferActionCounter = "counter"
	OfferActionCancel  = "cancel"
	OfferActionFulfill = "fulfill"
	OfferActionDispute = "dispute"
	OfferActionResolve = "resolve"
)

// Ошибки машины состояний.
var (
	ErrActionNotAllowed = errors.New("action is not allowed from the current offer status")
	ErrAlreadyFulfilled = errors.New("party has already confirmed fulfillment")
)

// offerActionSources перечисляет статусы, из которых разрешено каждое действие.
// Любой переход вне этой таблицы отклоняется, сохранённый статус не меняется.
var offerActionSources = map[string][]string{
	OfferActionSend:    {OfferStatusDraft},
	OfferActionAccept:  {OfferStatusSent, OfferStatusCountered},
	OfferActionReject:  {OfferStatusSent, OfferStatusCountered},
	OfferActionCounter: {OfferStatusSent, OfferStatusCountered},
	OfferActionCancel:  {OfferStatusDraft, OfferStatusSent},
	OfferActionFulfill: {OfferStatusAccepted, OfferStatusInProgress},
	OfferActionDispute: {OfferStatusAccepted, OfferStatusInProgress},
	OfferActionResolve: {OfferStatusDisputed},
}

// OfferActionSources возвращает статусы-источники действия.
// Репозиторий использует их в условных UPDATE (compare-and-transition).
func OfferActionSources(action string) []string {
	sources := offerActionSources[action]
	out := make([]string, len(sources))
	copy(out, sources)
	return out
}

// CanApplyOfferAction проверяет, допустимо ли действие из текущего статуса.
func CanApplyOfferAction(action, status string) bool {
	for _, s := range offerActionSources[action] {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminalOfferStatus сообщает, завершён ли жизненный цикл предложения.
// COUNTERED терминален для конкретной строки: переговоры продолжаются в дочернем предложении.
func IsTerminalOfferStatus(status string) bool {
	switch status {
	case OfferStatusRejected, OfferStatusCancelled, OfferStatusCompleted, OfferStatusCountered:
		return true
	}
	return false
}

// FulfillmentOutcome описывает результат подтверждения исполнения одной стороной.
type FulfillmentOutcome struct {
	NewStatus            string
	FulfilledByInitiator bool
	FulfilledByRecipient bool
	Completed            bool
}

// ResolveFulfillment вычисляет новое состояние при подтверждении исполнения.
// Правило схождения: повторное подтверждение той же стороной отклоняется;
// если вторая сторона уже подтвердила — предложение завершено; первое
// подтверждение переводит ACCEPTED в IN_PROGRESS; в остальных случаях статус
// не меняется. Итог не зависит от порядка подтверждений сторон.
func ResolveFulfillment(status string, byInitiator, doneInitiator, doneRecipient bool) (FulfillmentOutcome, error) {
	if !CanApplyOfferAction(OfferActionFulfill, status) {
		return FulfillmentOutcome{}, ErrActionNotAllowed
	}

	if byInitiator && doneInitiator {
		return FulfillmentOutcome{}, ErrAlreadyFulfilled
	}
	if !byInitiator && doneRecipient {
		return FulfillmentOutcome{}, ErrAlreadyFulfilled
	}

	out := FulfillmentOutcome{
		FulfilledByInitiator: doneInitiator || byInitiator,
		FulfilledByRecipient: doneRecipient || !byInitiator,
	}

	switch {
	case out.FulfilledByInitiator && out.FulfilledByRecipient:
		out.NewStatus = OfferStatusCompleted
		out.Completed = true
	case status == OfferStatusAccepted:
		out.NewStatus = OfferStatusInProgress
	default:
		out.NewStatus = status
	}

	return out, nil
}

// SwapRoles возвращает пару инициатор/получатель для контрпредложения.
// Контрпредложение — новая сущность: получатель исходного предложения
// становится инициатором нового, и наоборот.
func SwapRoles(offer *BarterOffer) (newInitiator, newRecipient uuid.UUID) {
	return offer.RecipientVendorID, offer.InitiatorVendorID
}
