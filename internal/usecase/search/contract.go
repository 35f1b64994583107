package search

import "github.com/kailas-cloud/faqsearch/internal/domain/faq"

// CatalogReader exposes the current immutable FAQ snapshot.
type CatalogReader interface {
	Documents() ([]faq.Document, error)
}
