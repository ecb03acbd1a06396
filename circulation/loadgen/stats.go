package loadgen

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

const maxLatencySamples = 10_000

// Stats summarizes a run. Rejections are counted per error kind, Failures are technical errors.
type Stats struct {
	Items      []uuid.UUID
	Visits     int
	Operations int
	Rejections map[core.ErrorKind]int
	Failures   int
	Elapsed    time.Duration
	P50        time.Duration
	P99        time.Duration
}

func (s Stats) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}

	return float64(s.Operations) / s.Elapsed.Seconds()
}

type recorder struct {
	mu         sync.Mutex
	visits     int
	operations int
	rejections map[core.ErrorKind]int
	failures   int
	latencies  []time.Duration
}

func newRecorder() *recorder {
	return &recorder{
		rejections: make(map[core.ErrorKind]int),
		latencies:  make([]time.Duration, 0, maxLatencySamples),
	}
}

func (r *recorder) visit() {
	r.mu.Lock()
	r.visits++
	r.mu.Unlock()
}

func (r *recorder) record(latency time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations++
	if len(r.latencies) < maxLatencySamples {
		r.latencies = append(r.latencies, latency)
	}

	if err == nil {
		return
	}

	if kind, ok := core.KindOf(err); ok && !kind.IsInternal() {
		r.rejections[kind]++
		return
	}

	r.failures++
}

func (r *recorder) stats(items []uuid.UUID, elapsed time.Duration) Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	rejections := make(map[core.ErrorKind]int, len(r.rejections))
	for kind, count := range r.rejections {
		rejections[kind] = count
	}

	return Stats{
		Items:      items,
		Visits:     r.visits,
		Operations: r.operations,
		Rejections: rejections,
		Failures:   r.failures,
		Elapsed:    elapsed,
		P50:        percentile(r.latencies, 0.50),
		P99:        percentile(r.latencies, 0.99),
	}
}

func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	index := int(float64(len(sorted)-1) * p)

	return sorted[index]
}
