package rag

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/CorpusAPI/internal/adapter/utils"
	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/jobModel"
	"github.com/akolanti/CorpusAPI/internal/loader"
	"github.com/akolanti/CorpusAPI/internal/metrics"
	"github.com/akolanti/CorpusAPI/internal/rag/embedding"
	"github.com/akolanti/CorpusAPI/internal/rag/ingest"
	"github.com/akolanti/CorpusAPI/internal/rag/llm"
	"github.com/akolanti/CorpusAPI/internal/rag/vectorDB"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - Real work happens down low bruh
  - This is the PUBLIC contract.
  - It defines the "behavior" (what the worker can do).
  - We expose this to keep the worker decoupled from our specific logic.

2. service (Private Struct):
  - down low stuff
  - This is the PRIVATE implementation.
  - It holds the "state" (database connections and LLM clients).
  - It is lowercase to prevent external packages from accessing our
    internal dependencies (vectorDB, llmProvider) directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.
  - if it quacks like a duck, -it's a duck (Duck Typing)

4. Dependency Injection (NewService):
  - This constructor links the private struct to the public interface.
  - It allows us to swap real DBs for mocks during testing without
    changing the worker's code.
*/

// Service Worker will only call this service - it doesn't need to know the llm or the vector
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestPath(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	vectorDB     vectorDB.DataProcessor
	llmProvider  llm.Provider
	embedder     embedding.Embedder
	docStore     jobModel.DocumentStore
	loader       *loader.Loader
	chunkSize    int
	chunkOverlap int
	logger       *logger_i.Logger
}

// NewService constructor. Chunk size and overlap come from the deployment
// settings so the splitter is tuned in one place.
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder, docs jobModel.DocumentStore, ldr *loader.Loader, chunkSize int, chunkOverlap int) Service {
	return &service{
		vectorDB:     vector,
		llmProvider:  llm,
		embedder:     em,
		docStore:     docs,
		loader:       ldr,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY).(string), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	// Embedding
	embeddingStep, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, embeddingStep)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	// Vector DB Search
	matches, err := s.executeVectorSearchStep(processContext, inMethodLogger, &jobt, embeddingStep)
	if err != nil {
		return s.jobError(jobt, err, "VECTOR_DB_FAILURE", true)
	}

	// LLM Generation
	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, matches)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	//Background Cache Save
	go func() {
		err = s.vectorDB.SaveToCache(ctx, utils.GetNewUUID(), embeddingStep, answer)
		if err != nil {
			s.logger.Error("Failed to save to cache")
		}
	}()

	return returnOutput(jobt, answer)
}

func (s *service) IngestPath(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()
	j := ingest.ProcessCorpusIngestion(ctx, job, ingest.Params{
		Loader:       s.loader,
		Embedder:     s.embedder,
		VectorDB:     s.vectorDB,
		DocStore:     s.docStore,
		ChunkSize:    s.chunkSize,
		ChunkOverlap: s.chunkOverlap,
	})
	if j.Status == jobModel.JobStatusError {
		return s.jobError(j, errors.New("corpus ingestion failed"), "INGESTION_FAILURE", true)
	}
	return j
}
