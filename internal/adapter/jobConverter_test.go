package adapter

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/internal/domain/jobModel"
)

func TestToAPIResponse_UsesQAEnvelope(t *testing.T) {
	qa := docModel.NewQAResponse("why", "because", []docModel.RetrievalResult{
		{Chunk: docModel.Chunk{Text: "passage", Metadata: docModel.Metadata{Source: "a.txt"}}, Score: 0.9, Rank: 1},
	})
	job := jobModel.Job{
		Id:     "j1",
		Status: jobModel.JobStatusComplete,
		JobPayload: jobModel.JobPayload{
			Question: "stale question",
			QA:       &qa,
		},
	}

	res := ToAPIResponse(job)

	if res.Result.QAResult == nil {
		t.Fatal("a job with a QA envelope must produce a QAResult")
	}
	got := res.Result.QAResult
	if got.Question != "why" || got.Answer != "because" {
		t.Errorf("QAResult got %q / %q, want the envelope's question and answer", got.Question, got.Answer)
	}
	if len(got.Sources) != 1 || got.Sources[0].Source != "a.txt" || got.Sources[0].Rank != 1 {
		t.Errorf("citations got %+v, want the envelope's source", got.Sources)
	}
	if got.Timestamp.IsZero() {
		t.Error("QAResult must carry the envelope's timestamp")
	}
}

func TestToAPIResponse_NoAnswerNoSources(t *testing.T) {
	job := jobModel.Job{
		Id:         "j2",
		Status:     jobModel.JobStatusRunning,
		JobPayload: jobModel.JobPayload{Question: "pending"},
	}
	if res := ToAPIResponse(job); res.Result.QAResult != nil {
		t.Errorf("a job without an answer or sources should have no QAResult, got %+v", res.Result.QAResult)
	}
}

func TestToAPIResponse_PartialSourcesWithoutEnvelope(t *testing.T) {
	//a query that died after retrieval still surfaces its citations
	job := jobModel.Job{
		Id:      "j3",
		Status:  jobModel.JobStatusError,
		EndTime: time.Now(),
		JobPayload: jobModel.JobPayload{
			Question: "q",
			Sources: []docModel.RetrievalResult{
				{Chunk: docModel.Chunk{Text: "passage", Metadata: docModel.Metadata{Source: "b.txt"}}, Score: 0.8, Rank: 1},
			},
		},
	}

	res := ToAPIResponse(job)
	if res.Result.QAResult == nil || len(res.Result.QAResult.Sources) != 1 {
		t.Fatalf("retrieved sources should survive an errored job, got %+v", res.Result.QAResult)
	}
}

func TestTruncateExcerpt_RuneBoundary(t *testing.T) {
	//a two byte rune straddles the cut point
	text := strings.Repeat("a", excerptLimit-1) + "éç"

	got := truncateExcerpt(text)

	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8: %q", got)
	}
	if len(got) > excerptLimit {
		t.Errorf("excerpt length got %d, want at most %d", len(got), excerptLimit)
	}
	//the straddling rune is dropped whole, never split
	if got != strings.Repeat("a", excerptLimit-1) {
		t.Errorf("excerpt should end before the straddling rune, got %q", got)
	}
}

func TestTruncateExcerpt_ShortPassesThrough(t *testing.T) {
	if got := truncateExcerpt("short"); got != "short" {
		t.Errorf("got %q, want the text unchanged", got)
	}
}
