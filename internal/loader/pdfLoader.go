package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
	"github.com/dslipak/pdf"
)

// extractPDF pulls plain text out of every page, in page order, and joins the
// pages with a blank line. This is deliberately layout-unaware: tables and
// columns come out linearized. The file handle is closed on every exit path.
func extractPDF(path string) (string, int, error) {
	log := logger_i.NewLogger("pdf_loader")

	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat pdf %s: %w", path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse pdf %s: %w", path, err)
	}

	numPages := reader.NumPage()
	log.Debug("extractPDF", "path", path, "number of pages", numPages)

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			log.Debug("extractPDF", "null page", i)
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// A single bad page should not sink the document
			log.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n\n"), numPages, nil
}

// protectExtract bounds GetPlainText with a timeout. Malformed content streams
// can send the parser into a spin, and there is no cancellation hook in the
// library itself.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		return "", errors.New("page extraction timeout")
	}
}
