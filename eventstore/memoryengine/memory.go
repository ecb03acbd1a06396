package memoryengine

import (
	"context"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	logMsgQuery               = "eventstore: query"
	logMsgAppend              = "eventstore: append"
	logMsgConcurrencyConflict = "eventstore: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_max_sequence"
	logAttrActualSequence     = "actual_max_sequence"
)

type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	payload        map[string]string
}

// EventStore keeps all events in memory in append order.
type EventStore struct {
	mu     sync.RWMutex
	events []storedEvent
	logger eventstore.Logger
}

type Option func(*EventStore)

// WithLogger sets a logger receiving debug records for queries and appends and info records for conflicts.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns all events matching the filter, in sequence order, and the highest sequence number among them.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	matching := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if !filter.Matches(stored.event.EventType, stored.payload) {
			continue
		}

		matching = append(matching, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	es.logDebug(logMsgQuery, logAttrEventCount, len(matching))

	return matching, maxSequenceNumber, nil
}

// Append stores the events if no event matching the filter was appended after expectedMaxSequenceNumber.
// All events are stored, or none.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvents ...eventstore.StorableEvent,
) error {

	if len(storableEvents) == 0 {
		return eventstore.ErrEmptyEventsToAppend
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	toStore := make([]storedEvent, 0, len(storableEvents))
	for _, event := range storableEvents {
		payload, err := flattenPayload(event.PayloadJSON)
		if err != nil {
			return err
		}

		toStore = append(toStore, storedEvent{event: event, payload: payload})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actualMaxSequenceNumber := es.maxSequenceNumberMatching(filter)
	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		es.logInfo(
			logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrActualSequence, actualMaxSequenceNumber,
		)

		return eventstore.ErrConcurrencyConflict
	}

	nextSequenceNumber := eventstore.MaxSequenceNumberUint(len(es.events))
	for i := range toStore {
		nextSequenceNumber++
		toStore[i].sequenceNumber = nextSequenceNumber
	}

	es.events = append(es.events, toStore...)
	es.logDebug(logMsgAppend, logAttrEventCount, len(toStore))

	return nil
}

// Len returns the total number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// EventTypes returns the types of all stored events in append order.
func (es *EventStore) EventTypes() []string {
	es.mu.RLock()
	defer es.mu.RUnlock()

	types := make([]string, 0, len(es.events))
	for _, stored := range es.events {
		types = append(types, stored.event.EventType)
	}

	return types
}

func (es *EventStore) maxSequenceNumberMatching(filter eventstore.Filter) eventstore.MaxSequenceNumberUint {
	for i := len(es.events) - 1; i >= 0; i-- {
		if filter.Matches(es.events[i].event.EventType, es.events[i].payload) {
			return es.events[i].sequenceNumber
		}
	}

	return 0
}

func (es *EventStore) logDebug(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Debug(msg, args...)
	}
}

func (es *EventStore) logInfo(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

// flattenPayload keeps the scalar top-level values of a JSON object as strings,
// which is what filter predicates compare against.
func flattenPayload(payloadJSON []byte) (map[string]string, error) {
	var raw map[string]any
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", eventstore.ErrInvalidPayloadJSON, err)
	}

	flat := make(map[string]string, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case string:
			flat[key] = v
		case bool, float64:
			flat[key] = fmt.Sprint(v)
		}
	}

	return flat, nil
}
