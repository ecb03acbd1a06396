// Package overdueloans reports every open loan past its due date together with the fine accrued so far.
package overdueloans
