// Package health aggregates component checks and in-process query
// statistics into a single report for the /health endpoint.
package health

import (
	"context"
	"time"
)

// Component statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ComponentStatus describes one dependency check.
type ComponentStatus struct {
	Healthy   bool
	LatencyMS int64
	Warning   string
	Error     string
}

// StoreStatus is the vector store check plus index facts.
type StoreStatus struct {
	ComponentStatus
	VectorCount int
	IndexName   string
}

// LLMStatus is the LLM provider check.
type LLMStatus struct {
	ComponentStatus
	Model string
}

// Report is the aggregate health of the service.
type Report struct {
	Status        string
	UptimeSeconds int64
	VectorStore   StoreStatus
	LLM           LLMStatus
	Queries       QueryStats
}

// Config carries the static facts echoed in the report.
type Config struct {
	IndexName string
	LLMModel  string
	// Latency warning thresholds. Zero disables the warning.
	StoreLatencyWarn time.Duration
	LLMLatencyWarn   time.Duration
}

// Service runs health checks against the store and the LLM provider.
type Service struct {
	store   VectorStore
	llm     LLMChecker
	cfg     Config
	rec     *Recorder
	started time.Time
}

// New creates a health service. The recorder is shared with the query
// handler, which feeds it per-request outcomes.
func New(store VectorStore, llm LLMChecker, cfg Config, rec *Recorder) *Service {
	if cfg.StoreLatencyWarn == 0 {
		cfg.StoreLatencyWarn = time.Second
	}
	if cfg.LLMLatencyWarn == 0 {
		cfg.LLMLatencyWarn = 3 * time.Second
	}
	return &Service{store: store, llm: llm, cfg: cfg, rec: rec, started: time.Now()}
}

// Recorder exposes the shared query statistics recorder.
func (s *Service) Recorder() *Recorder {
	return s.rec
}

// Check probes every component. Any unhealthy component makes the whole
// report unhealthy; warnings (empty index, slow responses) degrade it.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:        StatusHealthy,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		VectorStore:   s.checkStore(ctx),
		LLM:           s.checkLLM(ctx),
		Queries:       s.rec.Snapshot(),
	}

	switch {
	case !report.VectorStore.Healthy || !report.LLM.Healthy:
		report.Status = StatusUnhealthy
	case report.VectorStore.Warning != "" || report.LLM.Warning != "":
		report.Status = StatusDegraded
	}

	return report
}

func (s *Service) checkStore(ctx context.Context) StoreStatus {
	status := StoreStatus{IndexName: s.cfg.IndexName}

	start := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		status.Error = err.Error()
		return status
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	latency := time.Since(start)

	status.Healthy = true
	status.LatencyMS = latency.Milliseconds()
	status.VectorCount = count

	if count == 0 {
		status.Warning = "No vectors in index"
	} else if latency > s.cfg.StoreLatencyWarn {
		status.Warning = "High latency"
	}
	return status
}

func (s *Service) checkLLM(ctx context.Context) LLMStatus {
	status := LLMStatus{Model: s.cfg.LLMModel}

	start := time.Now()
	if err := s.llm.HealthCheck(ctx); err != nil {
		status.Error = err.Error()
		return status
	}
	latency := time.Since(start)

	status.Healthy = true
	status.LatencyMS = latency.Milliseconds()

	if latency > s.cfg.LLMLatencyWarn {
		status.Warning = "High latency"
	}
	return status
}
