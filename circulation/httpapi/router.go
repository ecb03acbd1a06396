package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AntonStoeckl/library-circulation-go/circulation/library"
)

// NewRouter builds the engine with recovery, the health and metrics endpoints and the /api/v1 routes.
func NewRouter(svc *library.Service, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	_ = r.SetTrustedProxies(nil) // nil never fails

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	RegisterRoutes(r.Group("/api/v1"), svc)

	return r
}

func RegisterRoutes(r gin.IRoutes, svc *library.Service) {
	h := &Handler{svc: svc}

	r.POST("/items", h.RegisterItem)
	r.PUT("/items/:item_id/visibility", h.ChangeItemVisibility)
	r.GET("/items/:item_id/availability", h.ItemAvailability)

	r.POST("/items/:item_id/loans", h.IssueLoan)
	r.POST("/loans/:loan_id/return", h.ReturnLoan)
	r.POST("/loans/:loan_id/renewals", h.RenewLoan)
	r.POST("/loans/:loan_id/fine-collections", h.CollectFine)
	r.GET("/loans/:loan_id/fine", h.CurrentFine)
	r.GET("/overdue-loans", h.OverdueLoans)
	r.GET("/patrons/:patron_id/loans", h.ActiveLoansForPatron)

	r.POST("/items/:item_id/reservations", h.Reserve)
	r.DELETE("/items/:item_id/reservations/:patron_id", h.CancelReservation)
	r.GET("/items/:item_id/reservations", h.ReservationsForItem)

	r.POST("/items/:item_id/lost-reports", h.ReportLost)
	r.POST("/items/:item_id/damage-reports", h.ReportDamaged)
	r.PUT("/records/:record_id/status", h.UpdateLostDamagedStatus)

	r.GET("/settings", h.Settings)
}
