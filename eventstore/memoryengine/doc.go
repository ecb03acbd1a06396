// Package memoryengine provides an in-process implementation of the eventstore contract.
//
// Query and Append run under one mutex, so the conditional append is trivially atomic.
// Predicates are evaluated against the top-level keys of each event's JSON payload.
// It is meant for tests, demos and the load generator, the log is lost on restart.
package memoryengine
