package faq

import (
	"context"
	"fmt"
	"os"

	"github.com/kailas-cloud/faqsearch/internal/domain"
	domfaq "github.com/kailas-cloud/faqsearch/internal/domain/faq"
)

// FileSource reads the FAQ collection from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the configured file path.
func (s *FileSource) Path() string { return s.path }

// Load reads and parses the file. The file is re-read on every call.
func (s *FileSource) Load(ctx context.Context) ([]domfaq.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrCatalogSourceUnavailable, s.path, err)
	}
	return decodeDocuments(data)
}
