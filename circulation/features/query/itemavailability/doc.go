// Package itemavailability shows the availability ledger of one item together with the loans,
// reservations and withdrawals that explain it.
package itemavailability
