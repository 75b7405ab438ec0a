package loader

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractDocx reads a .docx, .odt or .rtf file. The library flattens the whole
// document, so there is no page count to report.
func extractDocx(path string) (string, int, error) {
	text, err := cat.File(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return text, 0, nil
}
