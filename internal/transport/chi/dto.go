package chi

import (
	"fmt"

	"github.com/homescout-ai/homescout/internal/domain"
	healthuc "github.com/homescout-ai/homescout/internal/usecase/health"
	statsuc "github.com/homescout-ai/homescout/internal/usecase/stats"
)

type queryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// queryResponse is the chat envelope. Both success and handled-failure
// paths use it; transport-level failures (bad JSON, panics) use errorResponse.
type queryResponse struct {
	Success         bool        `json:"success"`
	Response        string      `json:"response,omitempty"`
	Sources         []sourceDTO `json:"sources,omitempty"`
	ResponseTime    string      `json:"response_time,omitempty"`
	ChunksRetrieved int         `json:"chunks_retrieved"`
	Error           string      `json:"error,omitempty"`
}

type sourceDTO struct {
	Rank     int         `json:"rank"`
	Score    float64     `json:"score"`
	Text     string      `json:"text"`
	Metadata metadataDTO `json:"metadata"`
}

type metadataDTO struct {
	Title        string `json:"title,omitempty"`
	Location     string `json:"location,omitempty"`
	Price        string `json:"price,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	BHK          string `json:"bhk,omitempty"`
	Area         string `json:"area,omitempty"`
	URL          string `json:"url,omitempty"`
	ChunkIndex   int    `json:"chunk_index"`
	TotalChunks  int    `json:"total_chunks"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func sourcesFromMatches(matches []domain.Match) []sourceDTO {
	out := make([]sourceDTO, len(matches))
	for i, m := range matches {
		out[i] = sourceDTO{
			Rank:  m.Rank,
			Score: m.Score,
			Text:  m.Text,
			Metadata: metadataDTO{
				Title:        m.Meta.Title,
				Location:     m.Meta.Location,
				Price:        m.Meta.Price,
				PropertyType: m.Meta.PropertyType,
				BHK:          m.Meta.BHK,
				Area:         m.Meta.Area,
				URL:          m.Meta.URL,
				ChunkIndex:   m.Meta.ChunkIndex,
				TotalChunks:  m.Meta.TotalChunks,
			},
		}
	}
	return out
}

type healthResponse struct {
	OverallStatus string              `json:"overall_status"`
	UptimeSeconds int64               `json:"uptime_seconds"`
	Components    healthComponentsDTO `json:"components"`
	Metrics       queryMetricsDTO     `json:"metrics"`
}

type healthComponentsDTO struct {
	VectorStore vectorStoreHealthDTO `json:"vector_store"`
	LLM         llmHealthDTO         `json:"llm"`
}

type vectorStoreHealthDTO struct {
	Healthy     bool   `json:"healthy"`
	LatencyMS   int64  `json:"latency_ms"`
	VectorCount int    `json:"vector_count"`
	IndexName   string `json:"index_name"`
	Warning     string `json:"warning,omitempty"`
	Error       string `json:"error,omitempty"`
}

type llmHealthDTO struct {
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
	Model     string `json:"model"`
	Warning   string `json:"warning,omitempty"`
	Error     string `json:"error,omitempty"`
}

type queryMetricsDTO struct {
	TotalQueries    int64  `json:"total_queries"`
	TotalErrors     int64  `json:"total_errors"`
	ErrorRate       string `json:"error_rate"`
	AvgResponseTime string `json:"avg_response_time"`
}

func healthToDTO(r healthuc.Report) healthResponse {
	return healthResponse{
		OverallStatus: r.Status,
		UptimeSeconds: r.UptimeSeconds,
		Components: healthComponentsDTO{
			VectorStore: vectorStoreHealthDTO{
				Healthy:     r.VectorStore.Healthy,
				LatencyMS:   r.VectorStore.LatencyMS,
				VectorCount: r.VectorStore.VectorCount,
				IndexName:   r.VectorStore.IndexName,
				Warning:     r.VectorStore.Warning,
				Error:       r.VectorStore.Error,
			},
			LLM: llmHealthDTO{
				Healthy:   r.LLM.Healthy,
				LatencyMS: r.LLM.LatencyMS,
				Model:     r.LLM.Model,
				Warning:   r.LLM.Warning,
				Error:     r.LLM.Error,
			},
		},
		Metrics: queryMetricsDTO{
			TotalQueries:    r.Queries.TotalQueries,
			TotalErrors:     r.Queries.TotalErrors,
			ErrorRate:       fmt.Sprintf("%.1f%%", r.Queries.ErrorRate*100),
			AvgResponseTime: fmt.Sprintf("%.2fs", r.Queries.AvgResponseTime.Seconds()),
		},
	}
}

type statsResponse struct {
	Status         string `json:"status"`
	EmbeddingModel string `json:"embedding_model"`
	LLMModel       string `json:"llm_model"`
	IndexName      string `json:"index_name"`
	TotalVectors   int    `json:"total_vectors"`
}

func statsToDTO(info statsuc.Info) statsResponse {
	return statsResponse{
		Status:         info.Status,
		EmbeddingModel: info.EmbeddingModel,
		LLMModel:       info.LLMModel,
		IndexName:      info.IndexName,
		TotalVectors:   info.TotalVectors,
	}
}
