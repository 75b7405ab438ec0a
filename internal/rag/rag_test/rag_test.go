package rag_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/internal/domain/jobModel"
	"github.com/akolanti/CorpusAPI/internal/loader"
	"github.com/akolanti/CorpusAPI/internal/rag"
)

func newTestService(v *MockVectorDB, l *MockLLM, e *MockEmbedder, d *MockDocStore) rag.Service {
	return rag.NewService(v, l, e, d, loader.NewLoader(), config.MaxChunkSize, config.ChunkOverlap)
}

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedStep   jobModel.InternalStatus
		expectedStatus jobModel.JobStatus
		expectedAnswer string
		expectedErr    string
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "", false, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string) (string, error) {
					return "final answer", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedStatus: jobModel.JobStatusQueued,
			expectedAnswer: "final answer",
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedStatus: jobModel.JobStatusQueued,
			expectedAnswer: "cached answer",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "EMBEDDING_FAILURE",
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "", false, nil
				}
				v.OnSearch = func(ctx context.Context, vec []float32, topK uint64) ([]docModel.RetrievalResult, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "VECTOR_DB_FAILURE",
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
					return "", false, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "LLM_GENERATION_FAILURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := newTestService(mVec, mLLM, mEmbed, NewMockDocStore())

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id:     "test-job",
				Status: jobModel.JobStatusQueued,
				JobPayload: jobModel.JobPayload{
					Question: "test question",
				},
			}

			result := s.ProcessRequest(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedStep != "" && result.CurrentStep != tt.expectedStep {
				t.Errorf("Step got %v, want %v", result.CurrentStep, tt.expectedStep)
			}

			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %s, want %s", result.JobPayload.Answer, tt.expectedAnswer)
			}

			if tt.expectedErr != "" && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %d for %s", result.Error.Code, http.StatusInternalServerError, tt.expectedErr)
			}
		})
	}
}

func TestProcessRequest_SourcesAttached(t *testing.T) {
	mVec := &MockVectorDB{}
	mVec.OnGetCachedAnswer = func(ctx context.Context, emb []float32) (string, bool, error) {
		return "", false, nil
	}
	mVec.OnSearch = func(ctx context.Context, vec []float32, topK uint64) ([]docModel.RetrievalResult, error) {
		return []docModel.RetrievalResult{
			{Chunk: docModel.Chunk{Text: "passage one", Metadata: docModel.Metadata{Source: "a.txt"}}, Score: 0.92, Rank: 1},
			{Chunk: docModel.Chunk{Text: "passage two", Metadata: docModel.Metadata{Source: "b.txt"}}, Score: 0.81, Rank: 2},
		}, nil
	}

	s := newTestService(mVec, &MockLLM{}, &MockEmbedder{}, NewMockDocStore())
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	result := s.ProcessRequest(ctx, jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{Question: "q"}})

	if len(result.JobPayload.Sources) != 2 {
		t.Fatalf("Sources got %d, want 2", len(result.JobPayload.Sources))
	}
	if result.JobPayload.Sources[0].Rank != 1 || result.JobPayload.Sources[1].Rank != 2 {
		t.Errorf("Sources should keep their rank order, got %d then %d",
			result.JobPayload.Sources[0].Rank, result.JobPayload.Sources[1].Rank)
	}
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("some test content for ingestion"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# heading\n\nbody text"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestIngestPath_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB)
		expectedStatus jobModel.JobStatus
	}{
		{
			name: "Ingestion_Success",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnCreateCollection = func(ctx context.Context, name string) error {
					return nil
				}
				v.OnUpsertBatch = func(ctx context.Context, coll string, chunks []docModel.Chunk, vectors [][]float32) error {
					return nil
				}
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
					return make([][]float32, len(chunks)), nil
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
		},
		{
			name: "Failure_Collection_Creation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnCreateCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Batch_Upsert",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB) {
				v.OnCreateCollection = func(ctx context.Context, name string) error {
					return nil
				}
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
					return make([][]float32, len(chunks)), nil
				}
				v.OnUpsertBatch = func(ctx context.Context, coll string, chunks []docModel.Chunk, vectors [][]float32) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}

			tt.setupMocks(mEmbed, mVec)

			s := newTestService(mVec, &MockLLM{}, mEmbed, NewMockDocStore())

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{
				Id: "ingest-job-1",
				JobPayload: jobModel.JobPayload{
					IngestPath: writeCorpus(t),
				},
			}

			result := s.IngestPath(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedStatus == jobModel.JobStatusError && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
			}

			if tt.expectedStatus == jobModel.JobStatusComplete {
				report := result.JobPayload.IngestReport
				if report == nil {
					t.Fatal("expected an ingest report on a completed job")
				}
				if report.Batch.Loaded != 2 {
					t.Errorf("Loaded got %d, want 2", report.Batch.Loaded)
				}
				if report.ChunksIndexed == 0 {
					t.Error("expected indexed chunks on a successful ingest")
				}
				if report.Stats.TotalDocuments != 2 {
					t.Errorf("Stats.TotalDocuments got %d, want 2", report.Stats.TotalDocuments)
				}
			}
		})
	}
}

func TestIngestPath_DeduplicatesByContentHash(t *testing.T) {
	dir := writeCorpus(t)
	docStore := NewMockDocStore()

	s := newTestService(&MockVectorDB{}, &MockLLM{}, &MockEmbedder{}, docStore)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "dedup-trace")

	first := s.IngestPath(ctx, jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{IngestPath: dir}})
	if first.Status != jobModel.JobStatusComplete {
		t.Fatalf("first ingest failed: %v", first.Status)
	}
	if len(first.JobPayload.IngestReport.Deduplicated) != 0 {
		t.Errorf("first pass should not dedup anything, got %v", first.JobPayload.IngestReport.Deduplicated)
	}

	second := s.IngestPath(ctx, jobModel.Job{Id: "j2", JobPayload: jobModel.JobPayload{IngestPath: dir}})
	if second.Status != jobModel.JobStatusComplete {
		t.Fatalf("second ingest failed: %v", second.Status)
	}
	report := second.JobPayload.IngestReport
	if len(report.Deduplicated) != 2 {
		t.Errorf("Deduplicated got %d entries, want 2", len(report.Deduplicated))
	}
	if report.ChunksIndexed != 0 {
		t.Errorf("re-ingesting identical bytes indexed %d chunks, want 0", report.ChunksIndexed)
	}
}

func TestProcessRequest_BuildsQAResponse(t *testing.T) {
	mVec := &MockVectorDB{}
	mLLM := &MockLLM{}
	mLLM.OnGenerate = func(ctx context.Context, q string, m []string) (string, error) {
		return "the answer", nil
	}

	s := newTestService(mVec, mLLM, &MockEmbedder{}, NewMockDocStore())
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "qa-trace")

	result := s.ProcessRequest(ctx, jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{Question: "what is it"}})

	qa := result.JobPayload.QA
	if qa == nil {
		t.Fatal("completed query should carry a QA envelope")
	}
	if qa.Question != "what is it" || qa.Answer != "the answer" {
		t.Errorf("QA got %q / %q, want the question and the generated answer", qa.Question, qa.Answer)
	}
	if qa.SourceCount() != len(result.JobPayload.Sources) {
		t.Errorf("SourceCount got %d, want %d", qa.SourceCount(), len(result.JobPayload.Sources))
	}
	if qa.Timestamp.IsZero() {
		t.Error("QA timestamp should be stamped at construction")
	}
}

func TestIngestPath_NormalizesContent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "messy.txt"), []byte("Hello   world\n\n\n\nBye"), 0644); err != nil {
		t.Fatal(err)
	}

	var captured []docModel.Chunk
	mVec := &MockVectorDB{}
	mVec.OnUpsertBatch = func(ctx context.Context, coll string, chunks []docModel.Chunk, vectors [][]float32) error {
		captured = append(captured, chunks...)
		return nil
	}

	s := newTestService(mVec, &MockLLM{}, &MockEmbedder{}, NewMockDocStore())
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "norm-trace")

	result := s.IngestPath(ctx, jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{IngestPath: dir}})
	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("ingest failed: %v", result.Status)
	}
	if len(captured) != 1 {
		t.Fatalf("chunks got %d, want 1", len(captured))
	}
	if captured[0].Text != "Hello world\n\nBye" {
		t.Errorf("indexed text got %q, want the normalized form", captured[0].Text)
	}
	if captured[0].DocID == "" {
		t.Error("indexed chunk should carry its parent document id")
	}
}

func TestIngestPath_UsesConfiguredChunking(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("word ", 40)
	if err := os.WriteFile(filepath.Join(dir, "long.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var captured []docModel.Chunk
	mVec := &MockVectorDB{}
	mVec.OnUpsertBatch = func(ctx context.Context, coll string, chunks []docModel.Chunk, vectors [][]float32) error {
		captured = append(captured, chunks...)
		return nil
	}

	const chunkSize, overlap = 40, 10
	s := rag.NewService(mVec, &MockLLM{}, &MockEmbedder{}, NewMockDocStore(), loader.NewLoader(), chunkSize, overlap)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "chunk-trace")

	result := s.IngestPath(ctx, jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{IngestPath: dir}})
	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("ingest failed: %v", result.Status)
	}
	if len(captured) < 2 {
		t.Fatalf("a %d char doc with a %d char limit must split, got %d chunk(s)", len(content), chunkSize, len(captured))
	}
	tail := captured[0].Text[len(captured[0].Text)-overlap:]
	if !strings.HasPrefix(captured[1].Text, tail) {
		t.Errorf("second chunk %q should start with the %d char tail %q of the first", captured[1].Text, overlap, tail)
	}
}

func TestIngestPath_DeduplicatesWithinBatch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("identical bytes in two files"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	var sources = map[string]bool{}
	mVec := &MockVectorDB{}
	mVec.OnUpsertBatch = func(ctx context.Context, coll string, chunks []docModel.Chunk, vectors [][]float32) error {
		for _, c := range chunks {
			sources[c.Metadata.Source] = true
		}
		return nil
	}

	s := newTestService(mVec, &MockLLM{}, &MockEmbedder{}, NewMockDocStore())
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "batch-dedup-trace")

	result := s.IngestPath(ctx, jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{IngestPath: dir}})
	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("ingest failed: %v", result.Status)
	}

	report := result.JobPayload.IngestReport
	if len(report.Deduplicated) != 1 {
		t.Errorf("Deduplicated got %d entries, want 1 for identical bytes in one job", len(report.Deduplicated))
	}
	if len(sources) != 1 {
		t.Errorf("chunks were indexed from %d files, want 1", len(sources))
	}
}

func TestIngestPath_MissingPath(t *testing.T) {
	s := newTestService(&MockVectorDB{}, &MockLLM{}, &MockEmbedder{}, NewMockDocStore())
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "missing-trace")

	result := s.IngestPath(ctx, jobModel.Job{Id: "j1", JobPayload: jobModel.JobPayload{IngestPath: "/no/such/path"}})
	if result.Status != jobModel.JobStatusError {
		t.Errorf("Status got %v, want %v", result.Status, jobModel.JobStatusError)
	}
}
