package store

import (
	"context"
	"sync"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

type InMemoryDocumentStore struct {
	mu      *sync.RWMutex
	records map[string]docModel.DocumentRecord
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		mu:      new(sync.RWMutex),
		records: make(map[string]docModel.DocumentRecord),
	}
}

func (store *InMemoryDocumentStore) GetByHash(ctx context.Context, fileHash string) (docModel.DocumentRecord, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	rec, found := store.records[fileHash]
	return rec, found
}

func (store *InMemoryDocumentStore) SaveRecord(ctx context.Context, rec docModel.DocumentRecord) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records[rec.FileHash] = rec
	return nil
}
