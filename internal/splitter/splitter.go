package splitter

import (
	"strings"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

// SplitDocument cuts a document's content into retrieval-sized chunks and
// stamps every chunk with its position and the sibling count. The returned
// chunks always satisfy 0 <= ChunkIndex < TotalChunks with no gaps.
func SplitDocument(doc docModel.Document, limit int, overlap int) []docModel.Chunk {
	if limit <= 0 {
		limit = config.MaxChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if strings.TrimSpace(doc.Content) == "" {
		return nil
	}

	pieces := splitTextIntoChunks(doc.Content, limit, overlap)

	total := len(pieces)
	chunks := make([]docModel.Chunk, 0, total)
	for i, text := range pieces {
		c := docModel.NewChunk(text, doc.Metadata, i, total)
		c.DocID = doc.DocID
		chunks = append(chunks, c)
	}
	return chunks
}

// splitTextIntoChunks splits on the most meaning-preserving separator the text
// actually contains, packing parts up to the limit with a trailing overlap
// carried into the next chunk for semantic continuity.
func splitTextIntoChunks(text string, limit int, overlap int) []string {
	var chunks []string

	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from "best" to "worst" for semantic meaning
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	found := false
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		// Hard cut if no separator found (rare)
		return []string{text[:limit]}
	}

	parts := strings.Split(text, splitChar)
	var currentChunk strings.Builder

	for _, part := range parts {
		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			// Start the next chunk with the tail of the previous one
			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}
