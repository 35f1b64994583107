package domain

import "errors"

var (
	// ErrInvalidRequest signals a search request rejected by validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCatalogNotLoaded signals that no FAQ snapshot is available yet.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
	// ErrInvalidCatalog signals a malformed FAQ collection (bad JSON, duplicate ids).
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrCatalogSourceUnavailable signals that the backing source could not be read.
	ErrCatalogSourceUnavailable = errors.New("catalog source unavailable")
)
