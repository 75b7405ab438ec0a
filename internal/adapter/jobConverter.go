package adapter

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/akolanti/CorpusAPI/internal/api"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		QAResult:     toQAResult(job),
		IngestResult: toIngestResult(job.JobPayload.IngestReport),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

const excerptLimit = 200

func toQAResult(job jobModel.Job) *api.QAResult {
	payload := job.JobPayload

	if qa := payload.QA; qa != nil {
		return &api.QAResult{
			Question:  qa.Question,
			Answer:    qa.Answer,
			Sources:   toCitations(qa.Sources),
			Timestamp: qa.Timestamp,
		}
	}

	//jobs that died before an answer still surface whatever was retrieved
	if payload.Answer == "" && len(payload.Sources) == 0 {
		return nil
	}
	return &api.QAResult{
		Question:  payload.Question,
		Answer:    payload.Answer,
		Sources:   toCitations(payload.Sources),
		Timestamp: job.EndTime,
	}
}

func toCitations(sources []docModel.RetrievalResult) []api.Citation {
	citations := make([]api.Citation, 0, len(sources))
	for _, src := range sources {
		citations = append(citations, api.Citation{
			Source:  src.Chunk.Metadata.Source,
			Score:   src.Score,
			Rank:    src.Rank,
			Excerpt: truncateExcerpt(src.Chunk.Text),
		})
	}
	return citations
}

// truncateExcerpt cuts at the limit but never inside a UTF-8 sequence.
func truncateExcerpt(text string) string {
	if len(text) <= excerptLimit {
		return text
	}
	cut := excerptLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func toIngestResult(report *jobModel.IngestReport) *api.IngestResult {
	if report == nil {
		return nil
	}

	failures := make([]api.FailureEntry, 0, len(report.Batch.Skipped))
	for _, f := range report.Batch.Skipped {
		failures = append(failures, api.FailureEntry{Path: f.Path, Reason: f.Reason})
	}

	return &api.IngestResult{
		Loaded:        report.Batch.Loaded,
		Skipped:       len(report.Batch.Skipped),
		ChunksIndexed: report.ChunksIndexed,
		Deduplicated:  len(report.Deduplicated),
		TotalChars:    report.Stats.TotalCharacters,
		Failures:      failures,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
