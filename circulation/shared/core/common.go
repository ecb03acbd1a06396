package core

import (
	"time"

	"github.com/google/uuid"
)

// Alias types instead of full value objects; IDs travel as UUID strings inside event payloads.

type EventTypeString = string
type ItemIDString = string
type PatronIDString = string
type LoanIDString = string
type ReservationIDString = string
type RecordIDString = string

type OccurredAtTS = time.Time

// ToOccurredAt normalizes to UTC with microsecond precision, which is what Postgres keeps.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// IDOf parses an ID taken from a projected event. Those were written from uuid.UUID values,
// so a parse failure means a corrupted log.
func IDOf(id string) uuid.UUID {
	return uuid.MustParse(id)
}
