package loadgen

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/library"
)

// patronActor owns its open loans. A worker holds the actor's lock for a whole visit.
type patronActor struct {
	mu    sync.Mutex
	id    uuid.UUID
	loans []uuid.UUID
}

// visit returns or renews one open loan, then tries to borrow a random item and reserves it
// when it is out of stock.
func (p *patronActor) visit(ctx context.Context, svc *library.Service, items []uuid.UUID, rec *recorder) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec.visit()

	if len(p.loans) > 0 {
		loanID := p.loans[0]

		switch roll := rand.Float64(); { //nolint:gosec // load generation only
		case roll < ChanceReturn:
			_, err := timed(ctx, rec, func(ctx context.Context) (struct{}, error) {
				_, err := svc.Return(ctx, loanID, nil)
				return struct{}{}, err
			})
			if err == nil {
				p.loans = p.loans[1:]
			}
		case roll < ChanceReturn+ChanceRenew:
			_, _ = timed(ctx, rec, func(ctx context.Context) (time.Time, error) {
				return svc.Renew(ctx, loanID)
			})
		}
	}

	itemID := items[rand.IntN(len(items))] //nolint:gosec // load generation only

	issued, err := timed(ctx, rec, func(ctx context.Context) (library.IssueResult, error) {
		return svc.Issue(ctx, p.id, itemID)
	})
	if err == nil {
		p.loans = append(p.loans, issued.LoanID)
		return
	}

	if rand.Float64() < ChanceReserve { //nolint:gosec // load generation only
		_, _ = timed(ctx, rec, func(ctx context.Context) (uuid.UUID, error) {
			return svc.Reserve(ctx, p.id, itemID)
		})
	}
}

func timed[R any](ctx context.Context, rec *recorder, op func(context.Context) (R, error)) (R, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	start := time.Now()
	result, err := op(ctx)
	rec.record(time.Since(start), err)

	return result, err
}
