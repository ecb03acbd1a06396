package core

import (
	"time"
)

type DomainEvents = []DomainEvent

type DomainEvent interface {
	IsEventType() EventTypeString
	HasOccurredAt() time.Time

	// IsErrorEvent is true for recorded rejections, projections skip those.
	IsErrorEvent() bool
}

// CirculationEventTypes lists every event type that changes circulation state.
// Command features use it as the event type part of their consistency boundary.
func CirculationEventTypes() []EventTypeString {
	return []EventTypeString{
		ItemRegisteredEventType,
		ItemVisibilityChangedEventType,
		LoanIssuedEventType,
		LoanRenewedEventType,
		LoanReturnedEventType,
		FineCollectedEventType,
		ItemReservedEventType,
		ReservationCanceledEventType,
		ReservationFulfilledEventType,
		ItemReportedLostEventType,
		ItemReportedDamagedEventType,
		LostDamagedStatusChangedEventType,
	}
}

// LoanEventTypes lists the event types a single loan's lifecycle consists of.
func LoanEventTypes() []EventTypeString {
	return []EventTypeString{
		LoanIssuedEventType,
		LoanRenewedEventType,
		LoanReturnedEventType,
		FineCollectedEventType,
	}
}
