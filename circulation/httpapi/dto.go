package httpapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are rendered with two decimal places.
const amountPlaces = 2

type RegisterItemRequest struct {
	Title       string `json:"title" binding:"required"`
	TotalCopies *int   `json:"totalCopies" binding:"required"`
	Visible     *bool  `json:"visible"`
}

type ChangeVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

type PatronRequest struct {
	PatronID string `json:"patronId" binding:"required"`
}

type ReturnRequest struct {
	ObservedAt *time.Time `json:"observedAt"`
}

type CollectFineRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type ReportLostRequest struct {
	Details string `json:"details"`
}

type ReportDamagedRequest struct {
	Details     string `json:"details"`
	DamageLevel string `json:"damageLevel" binding:"required"`
	Repairable  *bool  `json:"repairable" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type IssueResponse struct {
	LoanID               string    `json:"loanId"`
	DueDate              time.Time `json:"dueDate"`
	ReservationFulfilled bool      `json:"reservationFulfilled"`
}

type ReturnResponse struct {
	LoanID     string    `json:"loanId"`
	ReturnedAt time.Time `json:"returnedAt"`
	Fine       string    `json:"fine"`
}

type RenewResponse struct {
	LoanID  string    `json:"loanId"`
	DueDate time.Time `json:"dueDate"`
}

type FineResponse struct {
	LoanID string    `json:"loanId"`
	State  string    `json:"state"`
	AsOf   time.Time `json:"asOf"`
	Fine   string    `json:"fine"`
	Final  bool      `json:"final"`
}

type SettingsResponse struct {
	LoanPeriodDays int    `json:"loanPeriodDays"`
	FinePerDay     string `json:"finePerDay"`
	BorrowingLimit int    `json:"borrowingLimit"`
}

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(amountPlaces)
}

type LoanDTO struct {
	LoanID       string    `json:"loanId"`
	ItemID       string    `json:"itemId"`
	BorrowedAt   time.Time `json:"borrowedAt"`
	DueDate      time.Time `json:"dueDate"`
	RenewalCount int       `json:"renewalCount"`
	Overdue      bool      `json:"overdue"`
}

type ActiveLoansResponse struct {
	PatronID string    `json:"patronId"`
	Loans    []LoanDTO `json:"loans"`
	Count    int       `json:"count"`
}

type OverdueLoanDTO struct {
	LoanID      string    `json:"loanId"`
	ItemID      string    `json:"itemId"`
	PatronID    string    `json:"patronId"`
	DueDate     time.Time `json:"dueDate"`
	DaysOverdue int       `json:"daysOverdue"`
	AccruedFine string    `json:"accruedFine"`
}

type OverdueLoansResponse struct {
	AsOf  time.Time        `json:"asOf"`
	Loans []OverdueLoanDTO `json:"loans"`
	Count int              `json:"count"`
}

type AvailabilityResponse struct {
	ItemID             string `json:"itemId"`
	Title              string `json:"title"`
	Visible            bool   `json:"visible"`
	TotalCopies        int    `json:"totalCopies"`
	AvailableCopies    int    `json:"availableCopies"`
	OpenLoans          int    `json:"openLoans"`
	OpenReservations   int    `json:"openReservations"`
	PendingWithdrawals int    `json:"pendingWithdrawals"`
}

type ReservationDTO struct {
	ReservationID string    `json:"reservationId"`
	PatronID      string    `json:"patronId"`
	ReservedAt    time.Time `json:"reservedAt"`
}

type ReservationsResponse struct {
	ItemID       string           `json:"itemId"`
	Reservations []ReservationDTO `json:"reservations"`
	Count        int              `json:"count"`
}
