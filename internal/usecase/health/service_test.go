package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockStore struct {
	pingErr  error
	count    int
	countErr error
}

func (m *mockStore) Ping(_ context.Context) error         { return m.pingErr }
func (m *mockStore) Count(_ context.Context) (int, error) { return m.count, m.countErr }

type mockLLM struct {
	err error
}

func (m *mockLLM) HealthCheck(_ context.Context) error { return m.err }

func newTestService(store *mockStore, llm *mockLLM) *Service {
	return New(store, llm, Config{IndexName: "properties", LLMModel: "llama-3.1-8b-instant"}, NewRecorder())
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := newTestService(&mockStore{count: 120}, &mockLLM{})

	report := svc.Check(context.Background())

	if report.Status != StatusHealthy {
		t.Errorf("Status = %q, want healthy", report.Status)
	}
	if !report.VectorStore.Healthy || report.VectorStore.VectorCount != 120 {
		t.Errorf("store status = %+v", report.VectorStore)
	}
	if report.VectorStore.IndexName != "properties" {
		t.Errorf("IndexName = %q", report.VectorStore.IndexName)
	}
	if !report.LLM.Healthy || report.LLM.Model != "llama-3.1-8b-instant" {
		t.Errorf("llm status = %+v", report.LLM)
	}
}

func TestCheck_EmptyIndexDegrades(t *testing.T) {
	svc := newTestService(&mockStore{count: 0}, &mockLLM{})

	report := svc.Check(context.Background())

	if report.Status != StatusDegraded {
		t.Errorf("Status = %q, want degraded", report.Status)
	}
	if report.VectorStore.Warning != "No vectors in index" {
		t.Errorf("Warning = %q", report.VectorStore.Warning)
	}
	if !report.VectorStore.Healthy {
		t.Error("degraded store should still be healthy")
	}
}

func TestCheck_StoreDown(t *testing.T) {
	svc := newTestService(&mockStore{pingErr: errors.New("connection refused")}, &mockLLM{})

	report := svc.Check(context.Background())

	if report.Status != StatusUnhealthy {
		t.Errorf("Status = %q, want unhealthy", report.Status)
	}
	if report.VectorStore.Healthy || report.VectorStore.Error == "" {
		t.Errorf("store status = %+v", report.VectorStore)
	}
}

func TestCheck_CountFailureUnhealthy(t *testing.T) {
	svc := newTestService(&mockStore{countErr: errors.New("no index")}, &mockLLM{})

	if report := svc.Check(context.Background()); report.Status != StatusUnhealthy {
		t.Errorf("Status = %q, want unhealthy", report.Status)
	}
}

func TestCheck_LLMDown(t *testing.T) {
	svc := newTestService(&mockStore{count: 10}, &mockLLM{err: errors.New("401")})

	report := svc.Check(context.Background())

	if report.Status != StatusUnhealthy {
		t.Errorf("Status = %q, want unhealthy", report.Status)
	}
	if report.LLM.Healthy || report.LLM.Error == "" {
		t.Errorf("llm status = %+v", report.LLM)
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.Observe(2*time.Second, false)
	rec.Observe(4*time.Second, false)
	rec.Observe(time.Second, true)

	s := rec.Snapshot()
	if s.TotalQueries != 3 || s.TotalErrors != 1 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.AvgResponseTime != 2*time.Second {
		t.Errorf("AvgResponseTime = %v, want 2s", s.AvgResponseTime)
	}
	if s.ErrorRate < 0.33 || s.ErrorRate > 0.34 {
		t.Errorf("ErrorRate = %v, want 1/3", s.ErrorRate)
	}
}

func TestRecorder_Empty(t *testing.T) {
	s := NewRecorder().Snapshot()
	if s.TotalQueries != 0 || s.ErrorRate != 0 || s.AvgResponseTime != 0 {
		t.Errorf("snapshot = %+v, want zero values", s)
	}
}
