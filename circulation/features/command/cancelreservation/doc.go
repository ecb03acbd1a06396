// Package cancelreservation withdraws a patron's open reservation for an item.
package cancelreservation
