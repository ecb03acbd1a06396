// Package renewloan extends the due date of an open loan by one loan period. Overdue loans
// cannot be renewed.
package renewloan
