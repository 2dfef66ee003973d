package fileio

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest returns the hex BLAKE3 digest of the raw bytes at path.
// Stdin cannot be re-read, so "-" yields an empty digest.
func Digest(path string) (string, error) {
	if path == "" || path == "-" {
		return "", nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	h := blake3.New()
	if _, err := io.Copy(h, fh); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
