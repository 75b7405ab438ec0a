package ingest

import (
	"context"
	"os"
	"time"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/internal/domain/jobModel"
	"github.com/akolanti/CorpusAPI/internal/loader"
	"github.com/akolanti/CorpusAPI/internal/metrics"
	"github.com/akolanti/CorpusAPI/internal/rag/embedding"
	"github.com/akolanti/CorpusAPI/internal/rag/vectorDB"
	"github.com/akolanti/CorpusAPI/internal/splitter"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
)

var logger *logger_i.Logger

// Params carries the dependencies and tuning for one ingestion run.
type Params struct {
	Loader       *loader.Loader
	Embedder     embedding.Embedder
	VectorDB     vectorDB.DataProcessor
	DocStore     jobModel.DocumentStore
	ChunkSize    int
	ChunkOverlap int
}

// ProcessCorpusIngestion runs the full pipeline for one ingest job: load the
// path, normalize, dedup against the document registry, split, embed and
// upsert. The job comes back with an IngestReport in its payload.
func ProcessCorpusIngestion(ctx context.Context, job jobModel.Job, p Params) jobModel.Job {
	logger = logger_i.NewLogger("Corpus Ingestion ")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", job.Id)

	docPath := job.JobPayload.IngestPath
	log.Debug("Processing corpus", "path", docPath)

	job.CurrentStep = jobModel.IngestLoading
	docs, report, err := p.Loader.LoadDocuments(docPath)
	if err != nil {
		log.Error("Error loading documents", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error loading documents"
		return job
	}
	metrics.CountDocumentsLoaded(report.Loaded)
	metrics.CountDocumentsSkipped(len(report.Skipped))

	loader.ProcessDocuments(docs, true, nil)
	stats := loader.GetDocumentStats(docs)

	// the registry makes re-ingesting identical bytes a no-op, and the
	// in-batch set catches the same bytes showing up twice in one job
	var fresh []docModel.Document
	var deduplicated []string
	seenInBatch := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if seenInBatch[doc.Metadata.FileHash] {
			deduplicated = append(deduplicated, doc.Metadata.Source)
			continue
		}
		if _, seen := p.DocStore.GetByHash(ctx, doc.Metadata.FileHash); seen {
			deduplicated = append(deduplicated, doc.Metadata.Source)
			continue
		}
		seenInBatch[doc.Metadata.FileHash] = true
		fresh = append(fresh, doc)
	}
	log.Debug("Dedup pass done", "fresh", len(fresh), "deduplicated", len(deduplicated))

	err = p.VectorDB.CreateCollection(ctx, config.VectorCollectionName)
	if err != nil {
		log.Error("Error creating collection", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	job.CurrentStep = jobModel.IngestSplitting
	var allChunks []docModel.Chunk
	chunksPerDoc := make(map[string]int, len(fresh))
	for _, doc := range fresh {
		chunks := splitter.SplitDocument(doc, p.ChunkSize, p.ChunkOverlap)
		chunksPerDoc[doc.Metadata.FileHash] = len(chunks)
		allChunks = append(allChunks, chunks...)
	}
	log.Debug("Split corpus", "chunks", len(allChunks))

	job.CurrentStep = jobModel.IngestEmbedding
	err = BatchIngest(ctx, allChunks, p.VectorDB, p.Embedder)
	if err != nil {
		job.Status = jobModel.JobStatusError
		log.Error("Error indexing corpus", "error", err)
		return job
	}
	metrics.CountChunksIndexed(len(allChunks))

	job.CurrentStep = jobModel.IngestUpserting
	for _, doc := range fresh {
		rec := docModel.DocumentRecord{
			DocID:      doc.DocID,
			Source:     doc.Metadata.Source,
			FileHash:   doc.Metadata.FileHash,
			FileType:   doc.Metadata.FileType,
			Chunks:     chunksPerDoc[doc.Metadata.FileHash],
			IngestedAt: time.Now(),
		}
		if err := p.DocStore.SaveRecord(ctx, rec); err != nil {
			log.Error("Error saving document record", "source", rec.Source, "error", err)
		}
	}

	//uploaded files are staged in a temp dir, clean up after indexing
	if job.JobPayload.IngestFileName != "" {
		err = os.Remove(docPath)
		if err != nil {
			log.Error("Error removing file", "error", err)
		}
	}

	job.JobPayload.IngestReport = &jobModel.IngestReport{
		Batch:         report,
		Stats:         stats,
		ChunksIndexed: len(allChunks),
		Deduplicated:  deduplicated,
	}
	job.Status = jobModel.JobStatusComplete
	return job
}
