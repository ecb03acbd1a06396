package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/activeloansforpatron"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/reservationsforitem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/library"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const (
	paramItemID   = "item_id"
	paramLoanID   = "loan_id"
	paramPatronID = "patron_id"
	paramRecordID = "record_id"
	queryAsOf     = "asOf"
)

type Handler struct {
	svc *library.Service
}

func (h *Handler) RegisterItem(c *gin.Context) {
	var req RegisterItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	itemID, err := h.svc.RegisterItem(c.Request.Context(), req.Title, *req.TotalCopies, visible)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Header("Location", "/api/v1/items/"+itemID.String()+"/availability")
	c.JSON(http.StatusCreated, IDResponse{ID: itemID.String()})
}

func (h *Handler) ChangeItemVisibility(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	var req ChangeVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
		return
	}

	if err := h.svc.ChangeItemVisibility(c.Request.Context(), itemID, *req.Visible); err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ItemAvailability(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	availability, err := h.svc.ItemAvailability(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		ItemID:             availability.ItemID,
		Title:              availability.Title,
		Visible:            availability.Visible,
		TotalCopies:        availability.TotalCopies,
		AvailableCopies:    availability.AvailableCopies,
		OpenLoans:          availability.OpenLoans,
		OpenReservations:   availability.OpenReservations,
		PendingWithdrawals: availability.PendingWithdrawals,
	})
}

func (h *Handler) IssueLoan(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	patronID, ok := patronFromBody(c)
	if !ok {
		return
	}

	res, err := h.svc.Issue(c.Request.Context(), patronID, itemID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Header("Location", "/api/v1/loans/"+res.LoanID.String()+"/fine")
	c.JSON(http.StatusCreated, IssueResponse{
		LoanID:               res.LoanID.String(),
		DueDate:              res.DueDate,
		ReservationFulfilled: res.ReservationFulfilled,
	})
}

func (h *Handler) ReturnLoan(c *gin.Context) {
	loanID, ok := uuidParam(c, paramLoanID)
	if !ok {
		return
	}

	// the body is optional
	var req ReturnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
			return
		}
	}

	res, err := h.svc.Return(c.Request.Context(), loanID, req.ObservedAt)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, ReturnResponse{
		LoanID:     res.LoanID.String(),
		ReturnedAt: res.ReturnedAt,
		Fine:       formatAmount(res.Fine),
	})
}

func (h *Handler) RenewLoan(c *gin.Context) {
	loanID, ok := uuidParam(c, paramLoanID)
	if !ok {
		return
	}

	dueDate, err := h.svc.Renew(c.Request.Context(), loanID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, RenewResponse{LoanID: loanID.String(), DueDate: dueDate})
}

func (h *Handler) CollectFine(c *gin.Context) {
	loanID, ok := uuidParam(c, paramLoanID)
	if !ok {
		return
	}

	var req CollectFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
		return
	}

	if err := h.svc.CollectFine(c.Request.Context(), loanID, req.Amount); err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CurrentFine(c *gin.Context) {
	loanID, ok := uuidParam(c, paramLoanID)
	if !ok {
		return
	}

	asOf, ok := asOfQuery(c)
	if !ok {
		return
	}

	projection, err := h.svc.CurrentFineProjection(c.Request.Context(), loanID, asOf)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, FineResponse{
		LoanID: projection.LoanID,
		State:  string(projection.State),
		AsOf:   projection.AsOf,
		Fine:   formatAmount(projection.Fine),
		Final:  projection.Final,
	})
}

func (h *Handler) OverdueLoans(c *gin.Context) {
	asOf, ok := asOfQuery(c)
	if !ok {
		return
	}

	overdue, err := h.svc.OverdueLoans(c.Request.Context(), asOf)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, toOverdueLoansResponse(overdue))
}

func (h *Handler) ActiveLoansForPatron(c *gin.Context) {
	patronID, ok := uuidParam(c, paramPatronID)
	if !ok {
		return
	}

	active, err := h.svc.ActiveLoansForPatron(c.Request.Context(), patronID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, toActiveLoansResponse(active))
}

func (h *Handler) Reserve(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	patronID, ok := patronFromBody(c)
	if !ok {
		return
	}

	reservationID, err := h.svc.Reserve(c.Request.Context(), patronID, itemID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Header("Location", "/api/v1/items/"+itemID.String()+"/reservations")
	c.JSON(http.StatusCreated, IDResponse{ID: reservationID.String()})
}

func (h *Handler) CancelReservation(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	patronID, ok := uuidParam(c, paramPatronID)
	if !ok {
		return
	}

	if err := h.svc.CancelReservation(c.Request.Context(), patronID, itemID); err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ReservationsForItem(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	reservations, err := h.svc.ReservationsForItem(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, toReservationsResponse(reservations))
}

func (h *Handler) ReportLost(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	var req ReportLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
		return
	}

	recordID, err := h.svc.ReportLost(c.Request.Context(), itemID, req.Details)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: recordID.String()})
}

func (h *Handler) ReportDamaged(c *gin.Context) {
	itemID, ok := uuidParam(c, paramItemID)
	if !ok {
		return
	}

	var req ReportDamagedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
		return
	}

	recordID, err := h.svc.ReportDamaged(c.Request.Context(), itemID, req.Details, req.DamageLevel, *req.Repairable)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: recordID.String()})
}

func (h *Handler) UpdateLostDamagedStatus(c *gin.Context) {
	recordID, ok := uuidParam(c, paramRecordID)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
		return
	}

	if err := h.svc.UpdateLostDamagedStatus(c.Request.Context(), recordID, req.Status); err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Settings(c *gin.Context) {
	settings, err := h.svc.Settings(c.Request.Context())
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		LoanPeriodDays: settings.LoanPeriodDays,
		FinePerDay:     formatAmount(settings.FinePerDay),
		BorrowingLimit: settings.BorrowingLimit,
	})
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), name+" must be a uuid"))
		return uuid.Nil, false
	}

	return id, true
}

func patronFromBody(c *gin.Context) (uuid.UUID, bool) {
	var req PatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "invalid json"))
		return uuid.Nil, false
	}

	patronID, err := uuid.Parse(req.PatronID)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "patronId must be a uuid"))
		return uuid.Nil, false
	}

	return patronID, true
}

// asOfQuery parses an optional RFC 3339 asOf parameter. Absent means now.
func asOfQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query(queryAsOf)
	if raw == "" {
		return time.Time{}, true
	}

	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(string(core.KindInvalidArgument), "asOf must be RFC 3339"))
		return time.Time{}, false
	}

	return asOf, true
}

func toActiveLoansResponse(active activeloansforpatron.ActiveLoans) ActiveLoansResponse {
	loans := make([]LoanDTO, 0, len(active.Loans))
	for _, loan := range active.Loans {
		loans = append(loans, LoanDTO{
			LoanID:       loan.LoanID,
			ItemID:       loan.ItemID,
			BorrowedAt:   loan.BorrowedAt,
			DueDate:      loan.DueDate,
			RenewalCount: loan.RenewalCount,
			Overdue:      loan.Overdue,
		})
	}

	return ActiveLoansResponse{PatronID: active.PatronID, Loans: loans, Count: active.Count}
}

func toOverdueLoansResponse(overdue overdueloans.OverdueLoans) OverdueLoansResponse {
	loans := make([]OverdueLoanDTO, 0, len(overdue.Loans))
	for _, loan := range overdue.Loans {
		loans = append(loans, OverdueLoanDTO{
			LoanID:      loan.LoanID,
			ItemID:      loan.ItemID,
			PatronID:    loan.PatronID,
			DueDate:     loan.DueDate,
			DaysOverdue: loan.DaysOverdue,
			AccruedFine: formatAmount(loan.AccruedFine),
		})
	}

	return OverdueLoansResponse{AsOf: overdue.AsOf, Loans: loans, Count: overdue.Count}
}

func toReservationsResponse(reservations reservationsforitem.Reservations) ReservationsResponse {
	dtos := make([]ReservationDTO, 0, len(reservations.Reservations))
	for _, reservation := range reservations.Reservations {
		dtos = append(dtos, ReservationDTO{
			ReservationID: reservation.ReservationID,
			PatronID:      reservation.PatronID,
			ReservedAt:    reservation.ReservedAt,
		})
	}

	return ReservationsResponse{ItemID: reservations.ItemID, Reservations: dtos, Count: reservations.Count}
}
