package ingest

import (
	"context"
	"fmt"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/internal/rag/embedding"
	"github.com/akolanti/CorpusAPI/internal/rag/vectorDB"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
)

func BatchIngest(ctx context.Context, chunks []docModel.Chunk, vectorDB vectorDB.DataProcessor, embedder embedding.Embedder) error {
	logger = logger_i.NewLogger("Batch Ingestion ")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	batchSize := 100
	isHugeDataSet := false

	if len(chunks) > 1000000 { //we only want to do this if there is a huge corpus
		isHugeDataSet = true
		log.Debug("Is a huge dataset")
	}

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		currentBatch := chunks[i:end]

		//TODO:each batch can be its own go routine
		//but we will monitor the memory before introducing its own worker routine

		var texts []string
		for _, c := range currentBatch {
			if c.Text != "" {
				texts = append(texts, c.Text)
			}
		}

		log.Debug("Staring embedding call", "current batch length ", len(currentBatch), "length of texts", len(texts))
		vectors, err := embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		err = vectorDB.UpsertBatch(ctx, config.VectorCollectionName, currentBatch, vectors)
		if err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}

	return nil
}
