package library

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/activeloansforpatron"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/currentfineprojection"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/itemavailability"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/overdueloans"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/query/reservationsforitem"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

func (s *Service) ActiveLoansForPatron(ctx context.Context, patronID uuid.UUID) (activeloansforpatron.ActiveLoans, error) {
	return s.activeLoansForPatron.Handle(ctx, activeloansforpatron.BuildQuery(patronID, s.clock()))
}

// OverdueLoans uses the service clock for a zero asOf.
func (s *Service) OverdueLoans(ctx context.Context, asOf time.Time) (overdueloans.OverdueLoans, error) {
	return s.overdueLoans.Handle(ctx, overdueloans.BuildQuery(s.orNow(asOf)))
}

// CurrentFineProjection uses the service clock for a zero asOf.
func (s *Service) CurrentFineProjection(
	ctx context.Context,
	loanID uuid.UUID,
	asOf time.Time,
) (currentfineprojection.FineProjection, error) {

	return s.currentFineProjection.Handle(ctx, currentfineprojection.BuildQuery(loanID, s.orNow(asOf)))
}

func (s *Service) ItemAvailability(ctx context.Context, itemID uuid.UUID) (itemavailability.ItemAvailability, error) {
	return s.itemAvailability.Handle(ctx, itemavailability.BuildQuery(itemID))
}

func (s *Service) ReservationsForItem(ctx context.Context, itemID uuid.UUID) (reservationsforitem.Reservations, error) {
	return s.reservationsForItem.Handle(ctx, reservationsforitem.BuildQuery(itemID))
}

// Settings returns the settings currently in effect.
func (s *Service) Settings(ctx context.Context) (core.Settings, error) {
	return s.settingsProvider.GetSettings(ctx)
}

func (s *Service) orNow(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return s.clock()
	}

	return asOf
}
