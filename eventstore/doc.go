// Package eventstore defines the storage-agnostic contract for the circulation event log.
//
// Every state change in the library (a loan issued, a copy reported lost, a reservation placed)
// is stored as an append-only event. There are no streams in the classic sense. Instead, each
// command defines its own consistency boundary with a Filter:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.LoanIssuedEventType, core.LoanReturnedEventType).
//		AndAnyPredicateOf(
//			eventstore.P("ItemID", itemID.String()),
//			eventstore.P("PatronID", patronID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// ... decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvents...)
//
// Append is conditional: it fails with ErrConcurrencyConflict if any event matching the filter
// was appended after the query. Callers retry by querying and deciding again.
//
// Engines implementing the contract live in the postgresengine and memoryengine packages.
package eventstore
