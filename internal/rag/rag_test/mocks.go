package rag_test

import (
	"context"
	"sync"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSearch           func(ctx context.Context, vectorVal []float32, topK uint64) ([]docModel.RetrievalResult, error)
	OnGetCachedAnswer  func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache      func(ctx context.Context, id string, vector []float32, answer string) error
	OnCreateCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []docModel.Chunk, vectors [][]float32) error
}

func (m *MockVectorDB) Search(ctx context.Context, v []float32, topK uint64) ([]docModel.RetrievalResult, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v, topK)
	}
	return []docModel.RetrievalResult{
		{Chunk: docModel.Chunk{Text: "default context", Metadata: docModel.Metadata{Source: "default.txt"}}, Score: 0.9, Rank: 1},
	}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []docModel.Chunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, matches []string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, mth []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, mth)
	}
	return "mocked llm response", nil
}

// MockDocStore implements jobModel.DocumentStore
type MockDocStore struct {
	mu      sync.Mutex
	records map[string]docModel.DocumentRecord
}

func NewMockDocStore() *MockDocStore {
	return &MockDocStore{records: make(map[string]docModel.DocumentRecord)}
}

func (m *MockDocStore) GetByHash(ctx context.Context, fileHash string) (docModel.DocumentRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[fileHash]
	return rec, ok
}

func (m *MockDocStore) SaveRecord(ctx context.Context, rec docModel.DocumentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.FileHash] = rec
	return nil
}
