package core

import (
	"errors"
	"time"
)

// Event types of recorded rejections, one per command.
const (
	RegisteringItemFailedEventType           = "RegisteringItemFailed"
	ChangingItemVisibilityFailedEventType    = "ChangingItemVisibilityFailed"
	IssuingLoanFailedEventType               = "IssuingLoanFailed"
	ReturningLoanFailedEventType             = "ReturningLoanFailed"
	RenewingLoanFailedEventType              = "RenewingLoanFailed"
	CollectingFineFailedEventType            = "CollectingFineFailed"
	ReservingItemFailedEventType             = "ReservingItemFailed"
	CancelingReservationFailedEventType      = "CancelingReservationFailed"
	ReportingItemLostFailedEventType         = "ReportingItemLostFailed"
	ReportingItemDamagedFailedEventType      = "ReportingItemDamagedFailed"
	ChangingLostDamagedStatusFailedEventType = "ChangingLostDamagedStatusFailed"
)

// RejectionEventTypes lists all event types stored as CirculationRequestRejected.
func RejectionEventTypes() []EventTypeString {
	return []EventTypeString{
		RegisteringItemFailedEventType,
		ChangingItemVisibilityFailedEventType,
		IssuingLoanFailedEventType,
		ReturningLoanFailedEventType,
		RenewingLoanFailedEventType,
		CollectingFineFailedEventType,
		ReservingItemFailedEventType,
		CancelingReservationFailedEventType,
		ReportingItemLostFailedEventType,
		ReportingItemDamagedFailedEventType,
		ChangingLostDamagedStatusFailedEventType,
	}
}

// CirculationRequestRejected records a command that was turned down by a business rule.
// Empty ID fields were not part of the request.
type CirculationRequestRejected struct {
	EventType   EventTypeString
	ItemID      ItemIDString   `json:",omitempty"`
	PatronID    PatronIDString `json:",omitempty"`
	LoanID      LoanIDString   `json:",omitempty"`
	RecordID    RecordIDString `json:",omitempty"`
	ErrorKind   ErrorKind
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// RejectionSubject names the entities a rejected request referred to.
type RejectionSubject struct {
	ItemID   ItemIDString
	PatronID PatronIDString
	LoanID   LoanIDString
	RecordID RecordIDString
}

func BuildCirculationRequestRejected(
	eventType EventTypeString,
	subject RejectionSubject,
	err error,
	occurredAt time.Time,
) CirculationRequestRejected {

	kind, _ := KindOf(err)
	failureInfo := err.Error()

	var circulationErr *CirculationError
	if errors.As(err, &circulationErr) && circulationErr.Reason != "" {
		failureInfo = circulationErr.Reason
	}

	return CirculationRequestRejected{
		EventType:   eventType,
		ItemID:      subject.ItemID,
		PatronID:    subject.PatronID,
		LoanID:      subject.LoanID,
		RecordID:    subject.RecordID,
		ErrorKind:   kind,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// Rejection builds the ErrorDecision for a business rule violation of the given kind.
func Rejection(
	eventType EventTypeString,
	subject RejectionSubject,
	kind ErrorKind,
	reason string,
	occurredAt time.Time,
) DecisionResult {

	err := NewError(kind, reason)

	return ErrorDecision(BuildCirculationRequestRejected(eventType, subject, err, occurredAt), err)
}

func (e CirculationRequestRejected) IsEventType() EventTypeString {
	return e.EventType
}

func (e CirculationRequestRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e CirculationRequestRejected) IsErrorEvent() bool {
	return true
}

// RejectionOrAbort turns an error of a ledger operation into a decision: business kinds are
// recorded as rejection, internal kinds and untyped errors abort without appending.
func RejectionOrAbort(
	eventType EventTypeString,
	subject RejectionSubject,
	err error,
	occurredAt time.Time,
) DecisionResult {

	kind, ok := KindOf(err)
	if !ok || kind.IsInternal() {
		return AbortDecision(err)
	}

	return ErrorDecision(BuildCirculationRequestRejected(eventType, subject, err, occurredAt), err)
}
