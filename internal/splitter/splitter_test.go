package splitter

import (
	"strings"
	"testing"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

func TestSplitDocument_Blank(t *testing.T) {
	doc := docModel.NewDocument("   \n\n  ", docModel.Metadata{Source: "/a.txt"})
	if chunks := SplitDocument(doc, 100, 10); chunks != nil {
		t.Errorf("blank content should produce no chunks, got %d", len(chunks))
	}
}

func TestSplitDocument_Short(t *testing.T) {
	doc := docModel.NewDocument("short content", docModel.Metadata{Source: "/a.txt", FileType: "txt"})

	chunks := SplitDocument(doc, 100, 10)

	if len(chunks) != 1 {
		t.Fatalf("want 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Text != "short content" {
		t.Errorf("Text got %q", c.Text)
	}
	if c.ChunkIndex != 0 || c.TotalChunks != 1 {
		t.Errorf("index/total got %d/%d, want 0/1", c.ChunkIndex, c.TotalChunks)
	}
	if c.ChunkID == "" {
		t.Error("chunk must get an id")
	}
	if c.Metadata.Source != "/a.txt" {
		t.Error("chunk must carry document metadata")
	}
}

func TestSplitDocument_Invariants(t *testing.T) {
	text := strings.Repeat("some words here. ", 200)
	doc := docModel.NewDocument(text, docModel.Metadata{Source: "/long.txt"})

	chunks := SplitDocument(doc, 300, 50)

	if len(chunks) < 2 {
		t.Fatalf("long text should split, got %d chunks", len(chunks))
	}

	seen := make(map[string]bool, len(chunks))
	for i, c := range chunks {
		if c.ChunkIndex != i {
			t.Errorf("chunk %d has index %d, range must be contiguous", i, c.ChunkIndex)
		}
		if c.TotalChunks != len(chunks) {
			t.Errorf("chunk %d TotalChunks got %d, want %d", i, c.TotalChunks, len(chunks))
		}
		if c.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if seen[c.ChunkID] {
			t.Errorf("duplicate chunk id %s", c.ChunkID)
		}
		seen[c.ChunkID] = true
	}
}

func TestSplitDocument_DefaultsApply(t *testing.T) {
	doc := docModel.NewDocument("tiny", docModel.Metadata{Source: "/a.txt"})

	//zero limit falls back to the configured chunk size
	chunks := SplitDocument(doc, 0, 0)
	if len(chunks) != 1 {
		t.Fatalf("want 1 chunk, got %d", len(chunks))
	}
}

func TestSplitDocument_StampsDocID(t *testing.T) {
	doc := docModel.NewDocument(strings.Repeat("some words here. ", 50), docModel.Metadata{Source: "/a.txt"})

	chunks := SplitDocument(doc, 200, 20)
	if len(chunks) < 2 {
		t.Fatalf("want multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.DocID != doc.DocID {
			t.Errorf("chunk %d DocID got %q, want parent %q", i, c.DocID, doc.DocID)
		}
	}
}

func TestSplitTextIntoChunks_Overlap(t *testing.T) {
	const limit, overlap = 40, 10
	chunks := splitTextIntoChunks(strings.Repeat("word ", 40), limit, overlap)
	if len(chunks) < 2 {
		t.Fatalf("want multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1][len(chunks[i-1])-overlap:]
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d %q should start with the previous chunk's %d char tail %q", i, chunks[i], overlap, tail)
		}
	}
}

func TestSplitTextIntoChunks_NoSeparator(t *testing.T) {
	//unbroken run: the per-character fallback still respects the limit
	text := strings.Repeat("x", 500)
	chunks := splitTextIntoChunks(text, 100, 10)
	if len(chunks) < 2 {
		t.Fatalf("want multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds the limit: %d chars", i, len(c))
		}
	}
}
