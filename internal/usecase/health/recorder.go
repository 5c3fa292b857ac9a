package health

import (
	"sync"
	"time"
)

// Recorder accumulates in-process query statistics for the health report.
// Failed queries count toward the error rate but not the average latency.
type Recorder struct {
	mu            sync.Mutex
	queries       int64
	errors        int64
	totalResponse time.Duration
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe records one finished query.
func (r *Recorder) Observe(took time.Duration, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queries++
	if failed {
		r.errors++
	} else {
		r.totalResponse += took
	}
}

// QueryStats is a point-in-time snapshot of recorded queries.
type QueryStats struct {
	TotalQueries    int64
	TotalErrors     int64
	ErrorRate       float64       // 0..1
	AvgResponseTime time.Duration // successful queries only
}

// Snapshot returns the current statistics.
func (r *Recorder) Snapshot() QueryStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := QueryStats{TotalQueries: r.queries, TotalErrors: r.errors}
	if r.queries > 0 {
		s.ErrorRate = float64(r.errors) / float64(r.queries)
		s.AvgResponseTime = r.totalResponse / time.Duration(r.queries)
	}
	return s
}
