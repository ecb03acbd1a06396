// Package returnloan closes a loan, assesses its fine and puts the copy back on the shelf.
//
// The loan's item is resolved with a LoanID-scoped query first. The decision then runs inside
// the item's boundary, so the release of the copy is serialized with every other change of the
// item's ledger. Reservations on the item are left untouched.
package returnloan
