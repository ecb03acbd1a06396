// Package shell is the imperative shell around the circulation core: it maps domain events
// to and from storable events, runs the query-decide-append cycle with retries on
// concurrency conflicts, and provides the shared observability helpers of all handlers.
//
// In hexagonal terms this is the infrastructure layer.
package shell
