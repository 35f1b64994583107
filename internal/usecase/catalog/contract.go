package catalog

import (
	"context"

	"github.com/kailas-cloud/faqsearch/internal/domain/faq"
)

// Source loads the full FAQ collection from its backing storage.
type Source interface {
	Load(ctx context.Context) ([]faq.Document, error)
}
