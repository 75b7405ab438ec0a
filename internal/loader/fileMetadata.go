package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
)

// extractFileMetadata stats and hashes the file. Called for every successful
// load, so ProcessedTime is always the ingestion wall clock, never backdated.
func extractFileMetadata(path string) (docModel.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return docModel.Metadata{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	hash, err := hashFile(path)
	if err != nil {
		return docModel.Metadata{}, err
	}

	base := filepath.Base(path)
	return docModel.Metadata{
		Source:   path,
		FileType: extOf(path),
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
		FileSize: info.Size(),
		FileHash: hash,
		//birth time is not portable, ModifiedTime carries the fs timestamp
		ModifiedTime:  info.ModTime(),
		ProcessedTime: time.Now(),
	}, nil
}

// hashFile digests the full byte stream in fixed-size reads so memory stays
// bounded on large files. Content only: the path never enters the hash.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, config.FileHashBufferSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
