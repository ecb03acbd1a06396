// Package issueloan checks a copy of an item out to a patron.
//
// The consistency boundary covers every circulation event of the item and of the patron. Two
// concurrent issues of the last copy both see one available copy; the conditional append lets
// only one of them through and the other one re-decides after the retry and fails with OutOfStock.
// The same overlap on the patron serializes issues that race for the borrowing limit.
//
// If the patron holds a reservation on the item, the reservation is fulfilled in the same
// atomic batch as the loan.
package issueloan
