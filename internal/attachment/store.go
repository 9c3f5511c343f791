package attachment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wrxck/gmail-mcp/internal/sanitize"
)

// Store persists attachment bytes under <baseDir>/<messageID>/<safeName>.
// Filenames are sanitized before any filesystem use; message IDs are
// validated by the caller before they reach the store.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir. Directories are created on
// demand at save time.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes data to the message's subdirectory and returns the full path.
// Saving the same message/attachment pair twice overwrites the previous file.
func (s *Store) Save(messageID, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, messageID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("os.MkdirAll failed: %w", err)
	}

	// Owner-only access on the base directory, best effort.
	_ = os.Chmod(s.baseDir, 0o700)

	path := filepath.Join(dir, sanitize.Filename(filename))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("os.WriteFile failed: %w", err)
	}

	return path, nil
}
