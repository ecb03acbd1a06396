// Package core holds the circulation domain: the events that make up the history of items,
// loans, reservations and lost/damaged records, the projections that fold a history into
// current state, and the pure rules (availability ledger, loan and condition state machines,
// fine calculation) the command features decide with.
//
// Nothing in here performs I/O. In hexagonal terms this is the domain layer.
package core
