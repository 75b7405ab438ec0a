package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

// --- Mocks for BatchIngest ---

type mockEmbedder struct {
	batchFunc func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return nil, nil
}
func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	return m.batchFunc(ctx, chunks, isHuge)
}

type mockVectorDB struct {
	upsertFunc func(ctx context.Context, coll string, chunks []docModel.Chunk, vectors [][]float32) error
}

func (m *mockVectorDB) Search(ctx context.Context, v []float32, topK uint64) ([]docModel.RetrievalResult, error) {
	return nil, nil
}
func (m *mockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	return "", false, nil
}
func (m *mockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	return nil
}
func (m *mockVectorDB) CreateCollection(ctx context.Context, name string) error { return nil }
func (m *mockVectorDB) UpsertBatch(ctx context.Context, coll string, chunks []docModel.Chunk, vectors [][]float32) error {
	return m.upsertFunc(ctx, coll, chunks, vectors)
}

// --- Unit Tests ---

func TestBatchIngest(t *testing.T) {
	ctx := context.Background()
	chunks := make([]docModel.Chunk, 150) // Should trigger 2 batches (100 + 50)
	for i := range chunks {
		chunks[i] = docModel.Chunk{Text: "test content"}
	}

	callCount := 0
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, coll string, c []docModel.Chunk, v [][]float32) error {
			callCount++
			return nil
		},
	}

	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string, huge bool) ([][]float32, error) {
			return make([][]float32, len(ch)), nil
		},
	}

	err := BatchIngest(ctx, chunks, vDB, emb)

	if err != nil {
		t.Fatalf("BatchIngest failed: %v", err)
	}

	if callCount != 2 {
		t.Errorf("Expected 2 batches to be upserted, got %d", callCount)
	}
}

func TestBatchIngest_EmbeddingError(t *testing.T) {
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, coll string, c []docModel.Chunk, v [][]float32) error {
			t.Error("upsert must not run when embedding fails")
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string, huge bool) ([][]float32, error) {
			return nil, errors.New("quota exhausted")
		},
	}

	err := BatchIngest(context.Background(), []docModel.Chunk{{Text: "hi"}}, vDB, emb)
	if err == nil {
		t.Error("Expected error from BatchIngest, got nil")
	}
}

func TestBatchIngest_UpsertError(t *testing.T) {
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, coll string, c []docModel.Chunk, v [][]float32) error {
			return errors.New("upsert failed")
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string, huge bool) ([][]float32, error) {
			return make([][]float32, len(ch)), nil
		},
	}

	err := BatchIngest(context.Background(), []docModel.Chunk{{Text: "hi"}}, vDB, emb)
	if err == nil {
		t.Error("Expected error from BatchIngest, got nil")
	}
}

func TestBatchIngest_Empty(t *testing.T) {
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, coll string, c []docModel.Chunk, v [][]float32) error {
			t.Error("nothing to ingest, upsert must not run")
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, ch []string, huge bool) ([][]float32, error) {
			return make([][]float32, len(ch)), nil
		},
	}

	if err := BatchIngest(context.Background(), nil, vDB, emb); err != nil {
		t.Errorf("empty chunk set must be a no-op, got %v", err)
	}
}
