package loader

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// extractTextFile reads a plain-text (or Markdown) file and decodes it with a
// fixed encoding ladder: UTF-8, then GBK, then Latin-1. Latin-1 maps every
// byte to a code point, so the ladder cannot run dry unless it is trimmed.
func extractTextFile(path string) (string, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := decodeText(raw)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", path, err)
	}
	return text, 0, nil
}

func decodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	// x/text decoders substitute U+FFFD instead of failing, so "decoded
	// cleanly" here means no replacement rune appeared.
	if out, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw); err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
		return string(out), nil
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: tried utf-8, gbk, latin-1", ErrDecodeFailure)
	}
	return string(out), nil
}
