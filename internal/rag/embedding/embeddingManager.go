package embedding

import "context"

// Embedder turns text into vectors sized config.EmbeddingOutputDimensionality.
// BatchEmbedding preserves input order, one vector per chunk.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error)
}
