package loadgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/library"
)

type Generator struct {
	svc    *library.Service
	config Config
}

func NewGenerator(svc *library.Service, config Config) (*Generator, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Generator{svc: svc, config: config}, nil
}

// Run registers the items, then lets the workers pick random patrons until the duration
// elapsed, MaxVisits were made or ctx was canceled.
func (g *Generator) Run(ctx context.Context) (Stats, error) {
	items, err := g.registerItems(ctx)
	if err != nil {
		return Stats{}, err
	}

	patrons := make([]*patronActor, g.config.Patrons)
	for i := range patrons {
		patrons[i] = &patronActor{id: uuid.New()}
	}

	if g.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Duration)
		defer cancel()
	}

	rec := newRecorder()
	visits := make(chan struct{})
	start := time.Now()

	var wg sync.WaitGroup
	for range g.config.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range visits {
				patron := patrons[rand.IntN(len(patrons))] //nolint:gosec // load generation only
				patron.visit(ctx, g.svc, items, rec)
			}
		}()
	}

	g.feed(ctx, visits)
	wg.Wait()

	return rec.stats(items, time.Since(start)), nil
}

func (g *Generator) feed(ctx context.Context, visits chan<- struct{}) {
	defer close(visits)

	for sent := 0; g.config.MaxVisits <= 0 || sent < g.config.MaxVisits; sent++ {
		select {
		case <-ctx.Done():
			return
		case visits <- struct{}{}:
		}
	}
}

func (g *Generator) registerItems(ctx context.Context) ([]uuid.UUID, error) {
	items := make([]uuid.UUID, 0, g.config.Items)

	for i := range g.config.Items {
		itemID, err := g.svc.RegisterItem(ctx, fmt.Sprintf("Load Test Title %04d", i+1), g.config.CopiesPerItem, true)
		if err != nil {
			return nil, fmt.Errorf("registering item %d: %w", i+1, err)
		}

		items = append(items, itemID)
	}

	return items, nil
}
