package loader

import (
	"regexp"
	"strings"

	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

var (
	//control characters outside normal printable/whitespace ranges
	controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x9f]`)
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
)

// CleanText is the canonical normalization pass applied to extracted text of
// every format. The step order preserves paragraph breaks: horizontal
// whitespace is collapsed before blank-line collapsing, and newlines never
// enter a collapse class. Idempotent: CleanText(CleanText(x)) == CleanText(x).
func CleanText(text string) string {
	//all line-ending variants become a single line feed
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = controlChars.ReplaceAllString(text, "")

	//runs of spaces/tabs collapse to one space, newlines untouched
	text = horizontalWS.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	text = strings.Join(lines, "\n")

	//3+ consecutive newlines means 2+ blank lines, keep exactly one
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// ProcessDocuments normalizes content in place and merges custom metadata into
// each document. Returns the same slice for chaining.
func ProcessDocuments(docs []docModel.Document, clean bool, custom map[string]any) []docModel.Document {
	for i := range docs {
		if clean {
			docs[i].Content = CleanText(docs[i].Content)
		}
		if len(custom) > 0 {
			if docs[i].Metadata.Custom == nil {
				docs[i].Metadata.Custom = make(map[string]any, len(custom))
			}
			for k, v := range custom {
				docs[i].Metadata.Custom[k] = v
			}
		}
	}
	return docs
}
