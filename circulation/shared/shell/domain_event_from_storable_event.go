package shell

import (
	"errors"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

var (
	ErrMappingToDomainEventFailed           = errors.New("mapping to domain event failed")
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.ItemRegisteredEventType:
		return unmarshalPayload[core.ItemRegistered](payload)
	case core.ItemVisibilityChangedEventType:
		return unmarshalPayload[core.ItemVisibilityChanged](payload)
	case core.LoanIssuedEventType:
		return unmarshalPayload[core.LoanIssued](payload)
	case core.LoanRenewedEventType:
		return unmarshalPayload[core.LoanRenewed](payload)
	case core.LoanReturnedEventType:
		return unmarshalPayload[core.LoanReturned](payload)
	case core.FineCollectedEventType:
		return unmarshalPayload[core.FineCollected](payload)
	case core.ItemReservedEventType:
		return unmarshalPayload[core.ItemReserved](payload)
	case core.ReservationCanceledEventType:
		return unmarshalPayload[core.ReservationCanceled](payload)
	case core.ReservationFulfilledEventType:
		return unmarshalPayload[core.ReservationFulfilled](payload)
	case core.ItemReportedLostEventType:
		return unmarshalPayload[core.ItemReportedLost](payload)
	case core.ItemReportedDamagedEventType:
		return unmarshalPayload[core.ItemReportedDamaged](payload)
	case core.LostDamagedStatusChangedEventType:
		return unmarshalPayload[core.LostDamagedStatusChanged](payload)
	}

	if slices.Contains(core.RejectionEventTypes(), storableEvent.EventType) {
		return unmarshalPayload[core.CirculationRequestRejected](payload)
	}

	return nil, errors.Join(
		ErrMappingToDomainEventFailed,
		ErrMappingToDomainEventUnknownEventType,
		errors.New(storableEvent.EventType),
	)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
