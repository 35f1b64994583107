package health

import (
	"context"

	"github.com/kailas-cloud/faqsearch/internal/domain/faq"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogReader exposes the active FAQ snapshot.
type CatalogReader interface {
	Documents() ([]faq.Document, error)
}
