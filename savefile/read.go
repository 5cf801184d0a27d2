package savefile

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// ReadFile reads a save file and decodes it from Latin-1, the encoding
// Victoria 2 writes. Decoding happens here at the I/O boundary; the parser
// itself only ever sees UTF-8 strings.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- caller-supplied save path
	if err != nil {
		return "", fmt.Errorf("reading save file %q: %w", path, err)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding save file %q: %w", path, err)
	}

	return string(decoded), nil
}
