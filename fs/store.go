// Package fs exports collected metadata as JSON files, one per page.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ogmeta"
)

// Ensure FileStore implements ogmeta.PageStore at compile time.
var _ ogmeta.PageStore = (*FileStore)(nil)

// FileStore implements ogmeta.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes snapshot as indented JSON under a path derived from its URL.
func (s *FileStore) Save(ctx context.Context, snapshot *ogmeta.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(snapshot.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, append(b, '\n'), 0o644)
}

// Commit replaces the output directory with the saved pages.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0o755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved pages, leaving any previous output in place.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page URL to a relative file path rooted at its host.
// Example: https://example.com/docs/api → example.com/docs/api.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ogmeta.Errorf(ogmeta.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", ogmeta.Errorf(ogmeta.EINVALID, "URL %q has no host", rawURL)
	}
	host := strings.ReplaceAll(u.Host, ":", "_")

	p := u.Path
	switch {
	case p == "" || p == "/":
		p = "index.json"
	case strings.HasSuffix(p, "/"):
		p = strings.TrimPrefix(p, "/") + "index.json"
	default:
		p = strings.TrimPrefix(p, "/") + ".json"
	}

	rel := filepath.Join(host, filepath.FromSlash(p))
	if !filepath.IsLocal(rel) || !strings.HasPrefix(rel, host+string(filepath.Separator)) {
		return "", ogmeta.Errorf(ogmeta.EINVALID, "path traversal in URL %q", rawURL)
	}
	return rel, nil
}

