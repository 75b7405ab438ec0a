package loader

import (
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

// CorpusStats is a diagnostic aggregate over a loaded document set. It never
// feeds retrieval, only reporting.
type CorpusStats struct {
	TotalDocuments   int            `json:"total_documents"`
	TotalCharacters  int            `json:"total_characters"`
	AverageDocLength float64        `json:"average_doc_length"`
	FileTypes        map[string]int `json:"file_types"`
	Sources          map[string]int `json:"sources"`
}

// GetDocumentStats aggregates counts, character totals (code points) and
// frequency maps by file type and source basename. Inputs are not mutated and
// an empty corpus yields zeroes, not a division fault.
func GetDocumentStats(docs []docModel.Document) CorpusStats {
	stats := CorpusStats{
		FileTypes: make(map[string]int),
		Sources:   make(map[string]int),
	}

	for i := range docs {
		stats.TotalDocuments++
		stats.TotalCharacters += docs[i].ContentLength()
		stats.FileTypes[docs[i].Metadata.FileType]++
		stats.Sources[docs[i].Metadata.Basename()]++
	}

	if stats.TotalDocuments > 0 {
		stats.AverageDocLength = float64(stats.TotalCharacters) / float64(stats.TotalDocuments)
	}
	return stats
}
