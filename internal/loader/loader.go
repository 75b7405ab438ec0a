package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/domain/docModel"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
)

// Loader resolves filesystem paths into Documents. The supported extension set
// is fixed at construction; resolution is case-insensitive.
type Loader struct {
	supported map[string]struct{}
	logger    *logger_i.Logger
}

// FileFailure pairs a path that could not be loaded with the reason.
type FileFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// BatchReport is the structured outcome of a directory load: how many files
// made it, and exactly which ones did not and why. Batch mode never aborts
// over one bad file.
type BatchReport struct {
	Loaded  int           `json:"loaded"`
	Skipped []FileFailure `json:"skipped,omitempty"`
}

// NewLoader builds a Loader. With no arguments the default supported set
// (pdf, txt, md, markdown) applies.
func NewLoader(formats ...string) *Loader {
	if len(formats) == 0 {
		formats = config.DefaultSupportedFormats
	}
	supported := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		supported[strings.ToLower(strings.TrimPrefix(f, "."))] = struct{}{}
	}
	return &Loader{
		supported: supported,
		logger:    logger_i.NewLogger("Loader"),
	}
}

// SupportedFormats returns the configured extension set, sorted.
func (l *Loader) SupportedFormats() []string {
	out := make([]string, 0, len(l.supported))
	for f := range l.supported {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ValidateFormat reports whether the path's extension is in the supported set.
// Pure string work, no I/O.
func (l *Loader) ValidateFormat(path string) bool {
	_, ok := l.supported[extOf(path)]
	return ok
}

// LoadDocuments loads a single file (errors propagate) or a directory tree
// (per-file failures are isolated into the report). A missing path fails
// before any extraction I/O happens.
func (l *Loader) LoadDocuments(path string) ([]docModel.Document, BatchReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, BatchReport{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, BatchReport{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		doc, err := l.LoadSingleDocument(path)
		if err != nil {
			return nil, BatchReport{}, err
		}
		return []docModel.Document{doc}, BatchReport{Loaded: 1}, nil
	}

	return l.loadDirectory(path)
}

// LoadSingleDocument validates existence and format, then dispatches to the
// matching extraction strategy and attaches file metadata.
func (l *Loader) LoadSingleDocument(path string) (docModel.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return docModel.Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return docModel.Document{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !l.ValidateFormat(path) {
		return docModel.Document{}, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedFormat, extOf(path), strings.Join(l.SupportedFormats(), ", "))
	}

	text, totalPages, err := extract(path, formatForPath(path))
	if err != nil {
		return docModel.Document{}, err
	}

	meta, err := extractFileMetadata(path)
	if err != nil {
		return docModel.Document{}, err
	}
	meta.TotalPages = totalPages

	return docModel.NewDocument(text, meta), nil
}

func (l *Loader) loadDirectory(root string) ([]docModel.Document, BatchReport, error) {
	var docs []docModel.Document
	var report BatchReport

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			report.Skipped = append(report.Skipped, FileFailure{Path: path, Reason: err.Error()})
			l.logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if !l.ValidateFormat(path) {
			report.Skipped = append(report.Skipped, FileFailure{
				Path:   path,
				Reason: fmt.Sprintf("unsupported file format %q", extOf(path)),
			})
			return nil
		}

		doc, err := l.LoadSingleDocument(path)
		if err != nil {
			report.Skipped = append(report.Skipped, FileFailure{Path: path, Reason: err.Error()})
			l.logger.Warn("Skipping file", "path", path, "error", err)
			return nil
		}

		docs = append(docs, doc)
		report.Loaded++
		l.logger.Debug("Loaded file", "path", path, "chars", doc.ContentLength())
		return nil
	})
	if walkErr != nil {
		return docs, report, fmt.Errorf("failed walking %s: %w", root, walkErr)
	}

	l.logger.Info("Directory load finished", "root", root, "loaded", report.Loaded, "skipped", len(report.Skipped))
	return docs, report, nil
}
