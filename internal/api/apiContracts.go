package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status       string        `json:"status"`
	QAResult     *QAResult     `json:"qa_result,omitempty"`
	IngestResult *IngestResult `json:"ingest_result,omitempty"`
}

// QAResult is the external shape of an answered query. Citation.Source is the
// path of the file the cited chunk came from.
type QAResult struct {
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Sources   []Citation `json:"sources"`
	Timestamp time.Time  `json:"timestamp"`
}

type Citation struct {
	Source  string  `json:"source"`
	Score   float32 `json:"score"`
	Rank    int     `json:"rank"`
	Excerpt string  `json:"excerpt,omitempty"`
}

// IngestResult summarizes a finished ingestion batch.
type IngestResult struct {
	Loaded        int            `json:"loaded"`
	Skipped       int            `json:"skipped"`
	ChunksIndexed int            `json:"chunks_indexed"`
	Deduplicated  int            `json:"deduplicated"`
	TotalChars    int            `json:"total_characters"`
	Failures      []FailureEntry `json:"failures,omitempty"`
}

type FailureEntry struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type QueryRequest struct {
	Question string `json:"question" validate:"required"`
}

type IngestPathRequest struct {
	Path string `json:"path" validate:"required"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
