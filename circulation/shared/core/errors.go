package core

import (
	"errors"
)

// ErrorKind classifies circulation failures for callers.
type ErrorKind string

const (
	KindNotFound                         ErrorKind = "NotFound"
	KindOutOfStock                       ErrorKind = "OutOfStock"
	KindBorrowLimitExceeded              ErrorKind = "BorrowLimitExceeded"
	KindAlreadyBorrowed                  ErrorKind = "AlreadyBorrowed"
	KindAlreadyReturned                  ErrorKind = "AlreadyReturned"
	KindDuplicateReservation             ErrorKind = "DuplicateReservation"
	KindItemAvailableNoReservationNeeded ErrorKind = "ItemAvailableNoReservationNeeded"
	KindRenewalBlocked                   ErrorKind = "RenewalBlocked"
	KindInvalidStatusTransition          ErrorKind = "InvalidStatusTransition"
	KindInvalidArgument                  ErrorKind = "InvalidArgument"
	KindOverRelease                      ErrorKind = "OverRelease"
	KindInvariantViolation               ErrorKind = "InvariantViolation"
)

// IsInternal is true for kinds that indicate a bookkeeping defect rather than a rejected request.
func (k ErrorKind) IsInternal() bool {
	return k == KindOverRelease || k == KindInvariantViolation
}

// CirculationError is the typed error every command and query returns for domain failures.
type CirculationError struct {
	Kind   ErrorKind
	Reason string
}

func NewError(kind ErrorKind, reason string) *CirculationError {
	return &CirculationError{Kind: kind, Reason: reason}
}

func (e *CirculationError) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}

	return string(e.Kind) + ": " + e.Reason
}

// Is matches the kind sentinels below, so errors.Is(err, core.ErrOutOfStock) works for any reason.
func (e *CirculationError) Is(target error) bool {
	var sentinel *CirculationError
	if !errors.As(target, &sentinel) {
		return false
	}

	return sentinel.Reason == "" && sentinel.Kind == e.Kind
}

var (
	ErrNotFound                         = &CirculationError{Kind: KindNotFound}
	ErrOutOfStock                       = &CirculationError{Kind: KindOutOfStock}
	ErrBorrowLimitExceeded              = &CirculationError{Kind: KindBorrowLimitExceeded}
	ErrAlreadyBorrowed                  = &CirculationError{Kind: KindAlreadyBorrowed}
	ErrAlreadyReturned                  = &CirculationError{Kind: KindAlreadyReturned}
	ErrDuplicateReservation             = &CirculationError{Kind: KindDuplicateReservation}
	ErrItemAvailableNoReservationNeeded = &CirculationError{Kind: KindItemAvailableNoReservationNeeded}
	ErrRenewalBlocked                   = &CirculationError{Kind: KindRenewalBlocked}
	ErrInvalidStatusTransition          = &CirculationError{Kind: KindInvalidStatusTransition}
	ErrInvalidArgument                  = &CirculationError{Kind: KindInvalidArgument}
	ErrOverRelease                      = &CirculationError{Kind: KindOverRelease}
	ErrInvariantViolation               = &CirculationError{Kind: KindInvariantViolation}
)

// KindOf extracts the ErrorKind from anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var circulationErr *CirculationError
	if errors.As(err, &circulationErr) {
		return circulationErr.Kind, true
	}

	return "", false
}
