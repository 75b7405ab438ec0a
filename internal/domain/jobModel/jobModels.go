package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/internal/loader"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	UserQueryInit    InternalStatus = "Init"
	RAGCall          InternalStatus = "RAG"
	LLMCall          InternalStatus = "LLM"
	VectorDBCall     InternalStatus = "VectorDB"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	CacheCall        InternalStatus = "Cache"

	IngestInit      InternalStatus = "IngestInit"
	IngestLoading   InternalStatus = "IngestLoading"
	IngestSplitting InternalStatus = "IngestSplitting"
	IngestEmbedding InternalStatus = "IngestEmbedding"
	IngestUpserting InternalStatus = "IngestUpserting"
	Error           InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeQuery  JobType = "Query"
	JobTypeIngest JobType = "Ingest"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	//query jobs
	Question string                     `json:"question,omitempty"`
	Answer   string                     `json:"answer,omitempty"`
	Sources  []docModel.RetrievalResult `json:"sources,omitempty"`
	//set once per answered query, carries the timestamped answer envelope
	QA *docModel.QAResponse `json:"qa,omitempty"`

	//ingest jobs
	IngestFileName string         `json:"ingest_file_name,omitempty"`
	IngestPath     string         `json:"ingest_path,omitempty"`
	IngestReport   *IngestReport  `json:"ingest_report,omitempty"`
}

// IngestReport is what a finished ingest job hands back: the batch outcome,
// corpus-level stats over what loaded, and what the indexing stage did with it.
type IngestReport struct {
	Batch         loader.BatchReport `json:"batch"`
	Stats         loader.CorpusStats `json:"stats"`
	ChunksIndexed int                `json:"chunks_indexed"`
	//paths whose content hash was already in the registry
	Deduplicated []string `json:"deduplicated,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// DocumentStore is the registry of ingested documents, keyed by content hash.
// It is what makes re-ingesting the same bytes a no-op.
type DocumentStore interface {
	GetByHash(ctx context.Context, fileHash string) (docModel.DocumentRecord, bool)
	SaveRecord(ctx context.Context, rec docModel.DocumentRecord) error
}
