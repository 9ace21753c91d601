package types

import (
	"context"

	"github.com/advisor-labs/readiness/internal/models"
)

// Retriever answers nearest-neighbour queries within one session's chunk set.
type Retriever interface {
	Query(ctx context.Context, sessionID, query string, k int) ([]models.SearchResult, error)
}

// Index is the session-scoped retrieval store built during ingestion.
type Index interface {
	Retriever
	Upsert(ctx context.Context, chunks []models.Chunk) error
	Count(ctx context.Context, sessionID string) (int, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Close()
}

// Generator performs a single-turn generation-service call. No conversation
// state is carried between calls.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns texts into embedding vectors for indexing and querying.
type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
