package generator

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type WriteCategory string

const (
	CategoryPage     WriteCategory = "page"
	CategoryAsset    WriteCategory = "asset"
	CategorySitemap  WriteCategory = "sitemap"
	CategoryRobots   WriteCategory = "robots"
	CategoryFeed     WriteCategory = "feed"
	CategoryManifest WriteCategory = "manifest"
)

// WriteFileRequest describes a file write routed through the artifact writer.
type WriteFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    WriteCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// ArtifactWriter abstracts output storage so builds can target the local
// filesystem in production and in-memory sinks in tests.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteFileRequest) error
	RemoveAll(ctx context.Context, path string) error
}

// NewFSWriter returns an ArtifactWriter rooted at the given directory.
func NewFSWriter(root string) ArtifactWriter {
	return &fsWriter{root: strings.TrimSpace(root)}
}

type fsWriter struct {
	root string
}

func (w *fsWriter) resolve(rel string) string {
	cleaned := path.Clean("/" + strings.TrimSpace(rel))
	if cleaned == "/" {
		return w.root
	}
	return filepath.Join(w.root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))
}

func (w *fsWriter) EnsureDir(_ context.Context, dir string) error {
	return os.MkdirAll(w.resolve(dir), 0o755)
}

func (w *fsWriter) WriteFile(_ context.Context, req WriteFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	resolved := w.resolve(req.Path)
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return err
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	return os.WriteFile(resolved, data, 0o644)
}

func (w *fsWriter) RemoveAll(_ context.Context, dir string) error {
	return os.RemoveAll(w.resolve(dir))
}
