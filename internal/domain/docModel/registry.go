package docModel

import "time"

// DocumentRecord is the registry entry for one ingested document. Keyed by
// FileHash: identical bytes at two paths are the same record, which is the
// whole point of content-only hashing.
type DocumentRecord struct {
	DocID      string    `json:"doc_id"`
	Source     string    `json:"source"`
	FileHash   string    `json:"file_hash"`
	FileType   string    `json:"file_type"`
	Chunks     int       `json:"chunks"`
	IngestedAt time.Time `json:"ingested_at"`
}
