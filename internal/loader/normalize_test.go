package loader

import (
	"testing"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses runs and keeps paragraph break",
			in:   "Hello   world\n\n\n\nBye",
			want: "Hello world\n\nBye",
		},
		{
			name: "line endings become line feeds",
			in:   "a\r\nb\rc",
			want: "a\nb\nc",
		},
		{
			name: "control characters are stripped",
			in:   "a\x00b\x07c",
			want: "abc",
		},
		{
			name: "tabs collapse with spaces",
			in:   "a\t \tb",
			want: "a b",
		},
		{
			name: "per line trimming",
			in:   "  a  \n  b  ",
			want: "a\nb",
		},
		{
			name: "outer whitespace trimmed",
			in:   "\n\n  text  \n\n",
			want: "text",
		},
		{
			name: "single blank line survives",
			in:   "para one\n\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.in)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	messy := "  First   line\r\n\r\n\r\n\r\nSecond\tline  \n\n  third  "
	once := CleanText(messy)
	twice := CleanText(once)
	if once != twice {
		t.Errorf("CleanText is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestProcessDocuments(t *testing.T) {
	docs := []docModel.Document{
		docModel.NewDocument("Hello   world\n\n\n\nBye", docModel.Metadata{Source: "/a.txt"}),
		docModel.NewDocument("plain", docModel.Metadata{Source: "/b.txt"}),
	}

	ProcessDocuments(docs, true, map[string]any{"project": "alpha"})

	if docs[0].Content != "Hello world\n\nBye" {
		t.Errorf("content not normalized in place: %q", docs[0].Content)
	}
	for i := range docs {
		if docs[i].Metadata.Custom["project"] != "alpha" {
			t.Errorf("doc %d missing merged custom metadata", i)
		}
	}
}

func TestProcessDocuments_NoClean(t *testing.T) {
	docs := []docModel.Document{
		docModel.NewDocument("a   b", docModel.Metadata{Source: "/a.txt"}),
	}

	ProcessDocuments(docs, false, nil)

	if docs[0].Content != "a   b" {
		t.Errorf("content should be untouched when clean is off, got %q", docs[0].Content)
	}
}
