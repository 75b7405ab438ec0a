package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/data/redisStore"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
)

const recordKeyPrefix = "dochash:"

// RedisDocumentStore is the registry of ingested documents, keyed by content
// hash so the same bytes never get indexed twice regardless of path.
type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context, addr string, password string) *RedisDocumentStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisDocumentStore, addr, password)
	if inner == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) GetByHash(ctx context.Context, fileHash string) (docModel.DocumentRecord, bool) {
	var rec docModel.DocumentRecord

	val, err := s.store.Get(ctx, recordKeyPrefix+fileHash)
	if s.store.IsNil(err) {
		return rec, false
	} else if err != nil {
		s.logger.Error("Error reading document record", "hash", fileHash, "error", err)
		return rec, false
	}

	if err = json.Unmarshal([]byte(val), &rec); err != nil {
		s.logger.Error("Corrupt document record", "hash", fileHash, "error", err)
		return rec, false
	}
	return rec, true
}

func (s *RedisDocumentStore) SaveRecord(ctx context.Context, rec docModel.DocumentRecord) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "hash", rec.FileHash)

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, recordKeyPrefix+rec.FileHash, data, config.RedisDocumentStoreTTL)
	if err == nil {
		log.Debug("Saved document record")
	}
	return err
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test doc store"),
	}
}
