package docModel

import (
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/akolanti/CorpusAPI/internal/adapter/utils"
)

// Metadata describes the provenance of one source file. FileHash is computed
// from the file bytes only, so identical bytes share a hash regardless of
// where on disk they live.
type Metadata struct {
	Source        string         `json:"source"`
	FileType      string         `json:"file_type"`
	Title         string         `json:"title,omitempty"`
	Author        string         `json:"author,omitempty"`
	CreatedDate   time.Time      `json:"created_date,omitempty"`
	PageNumber    int            `json:"page_number,omitempty"`
	TotalPages    int            `json:"total_pages,omitempty"`
	FileSize      int64          `json:"file_size,omitempty"`
	FileHash      string         `json:"file_hash,omitempty"`
	ModifiedTime  time.Time      `json:"modified_time,omitempty"`
	ProcessedTime time.Time      `json:"processed_time,omitempty"`
	Custom        map[string]any `json:"custom_metadata,omitempty"`
}

// ToMap flattens the metadata into a single-level map. Custom entries are
// merged at the top level but fixed fields always win on a key collision, so
// a custom "source" or "file_hash" can never shadow the real one.
func (m *Metadata) ToMap() map[string]any {
	out := make(map[string]any, len(m.Custom)+11)
	for k, v := range m.Custom {
		out[k] = v
	}
	out["source"] = m.Source
	out["file_type"] = m.FileType
	out["title"] = orNil(m.Title)
	out["author"] = orNil(m.Author)
	out["created_date"] = isoOrNil(m.CreatedDate)
	out["page_number"] = intOrNil(m.PageNumber)
	out["total_pages"] = intOrNil(m.TotalPages)
	out["file_size"] = int64OrNil(m.FileSize)
	out["file_hash"] = orNil(m.FileHash)
	out["modified_time"] = isoOrNil(m.ModifiedTime)
	out["processed_time"] = isoOrNil(m.ProcessedTime)
	return out
}

// Basename returns the file name portion of Source.
func (m *Metadata) Basename() string {
	return filepath.Base(m.Source)
}

// Document is one fully extracted source file. Content is replaced in place by
// the normalizer; everything else is frozen after ingestion.
type Document struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
	DocID    string   `json:"doc_id"`
}

// NewDocument builds a Document and assigns it a fresh id. Id generation lives
// here, not in the struct, so plain literals stay inert for tests.
func NewDocument(content string, meta Metadata) Document {
	return Document{
		Content:  content,
		Metadata: meta,
		DocID:    utils.GetNewUUID(),
	}
}

// ContentLength counts Unicode code points, not bytes.
func (d *Document) ContentLength() int {
	return utf8.RuneCountInString(d.Content)
}

func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"content":  d.Content,
		"metadata": d.Metadata.ToMap(),
		"doc_id":   d.DocID,
	}
}

// Chunk is a retrievable sub-span of a Document. Metadata is the parent
// document's, shared not owned. For every sibling set, ChunkIndex values are
// the contiguous range [0, TotalChunks).
type Chunk struct {
	Text        string    `json:"text"`
	ChunkID     string    `json:"chunk_id"`
	DocID       string    `json:"doc_id,omitempty"`
	Metadata    Metadata  `json:"metadata"`
	Embedding   []float32 `json:"embedding,omitempty"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
}

// NewChunk assigns a fresh chunk id; index/total are stamped by the splitter
// once the sibling count is known.
func NewChunk(text string, meta Metadata, index int, total int) Chunk {
	return Chunk{
		Text:        text,
		ChunkID:     utils.GetNewUUID(),
		Metadata:    meta,
		ChunkIndex:  index,
		TotalChunks: total,
	}
}

// TextLength counts Unicode code points, not bytes.
func (c *Chunk) TextLength() int {
	return utf8.RuneCountInString(c.Text)
}

func (c *Chunk) ToMap() map[string]any {
	return map[string]any{
		"text":         c.Text,
		"chunk_id":     c.ChunkID,
		"doc_id":       c.DocID,
		"metadata":     c.Metadata.ToMap(),
		"embedding":    c.Embedding,
		"chunk_index":  c.ChunkIndex,
		"total_chunks": c.TotalChunks,
	}
}

// RetrievalResult is one scored hit from the vector index. Rank is 1-based and
// follows descending score. Chunk.Metadata.Source is the citation key the
// agent layer depends on.
type RetrievalResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float32 `json:"score"`
	Rank  int     `json:"rank"`
}

func (r *RetrievalResult) ToMap() map[string]any {
	return map[string]any{
		"chunk": r.Chunk.ToMap(),
		"score": r.Score,
		"rank":  r.Rank,
	}
}

// QAResponse is the per-query answer envelope. Sources keep presentation
// order.
type QAResponse struct {
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Sources    []RetrievalResult `json:"sources"`
	Confidence float32           `json:"confidence,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewQAResponse stamps the timestamp once at construction.
func NewQAResponse(question string, answer string, sources []RetrievalResult) QAResponse {
	return QAResponse{
		Question:  question,
		Answer:    answer,
		Sources:   sources,
		Timestamp: time.Now(),
	}
}

func (q *QAResponse) SourceCount() int {
	return len(q.Sources)
}

func (q *QAResponse) ToMap() map[string]any {
	sources := make([]map[string]any, 0, len(q.Sources))
	for i := range q.Sources {
		sources = append(sources, q.Sources[i].ToMap())
	}
	return map[string]any{
		"question":   q.Question,
		"answer":     q.Answer,
		"sources":    sources,
		"confidence": q.Confidence,
		"timestamp":  isoOrNil(q.Timestamp),
	}
}

func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isoOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

func intOrNil(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func int64OrNil(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
