// Package library is the caller-facing facade of the circulation system. A Service holds one
// instrumented handler per command and query, generates the identities of new loans,
// reservations and records, and stamps every command with the time of its clock.
//
// The HTTP API and the CLI are thin layers over a Service.
package library
