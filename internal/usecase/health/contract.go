package health

import "context"

// VectorStore is the store surface the health check needs.
type VectorStore interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// LLMChecker verifies the LLM provider responds.
type LLMChecker interface {
	HealthCheck(ctx context.Context) error
}
