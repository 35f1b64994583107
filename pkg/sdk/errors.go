package faqsearch

import "github.com/kailas-cloud/faqsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest           = domain.ErrInvalidRequest
	ErrCatalogNotLoaded         = domain.ErrCatalogNotLoaded
	ErrInvalidCatalog           = domain.ErrInvalidCatalog
	ErrCatalogSourceUnavailable = domain.ErrCatalogSourceUnavailable
)
