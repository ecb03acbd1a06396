// Package reservationsforitem lists the open reservations of an item sorted by reservation time.
// The order is for display; any reserving patron may borrow a returned copy first.
package reservationsforitem
