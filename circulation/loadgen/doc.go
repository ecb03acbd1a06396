// Package loadgen drives a library.Service with concurrent patron actors that borrow, return,
// renew and reserve items, and reports throughput and latency percentiles.
package loadgen
