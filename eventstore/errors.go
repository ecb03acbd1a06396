package eventstore

import (
	"errors"
)

// ErrConcurrencyConflict is returned by Append when another event matching the same Filter
// was appended after the Query that produced the expected MaxSequenceNumberUint.
var ErrConcurrencyConflict = errors.New("concurrency conflict: the consistency boundary changed since it was queried")

var ErrEmptyEventsTableName = errors.New("empty events table name supplied")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyEventsToAppend = errors.New("at least one event must be supplied to append")

// MaxSequenceNumberUint is the highest sequence number of all events matching a Filter.
// It is returned by Query and must be passed unchanged to Append.
type MaxSequenceNumberUint = uint
