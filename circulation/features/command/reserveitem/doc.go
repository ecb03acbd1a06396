// Package reserveitem lets a patron reserve an item that has no copy on the shelf. Reservations
// are not queued: whoever borrows a returned copy first gets it, and a patron's reservation is
// fulfilled when that patron borrows the item.
package reserveitem
