// Package changeitemvisibility hides an item from patrons or shows it again. Hidden items
// cannot be borrowed or reserved; open loans and reservations are not affected.
package changeitemvisibility
