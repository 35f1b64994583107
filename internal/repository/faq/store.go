package faq

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/faqsearch/internal/db"
	"github.com/kailas-cloud/faqsearch/internal/domain"
	domfaq "github.com/kailas-cloud/faqsearch/internal/domain/faq"
)

// kvStore is the consumer interface for the key-value backed source (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// StoreSource keeps the whole FAQ collection as one JSON value under a single key.
type StoreSource struct {
	store kvStore
	key   string
}

// NewStoreSource creates a Valkey/Redis backed catalog source.
func NewStoreSource(s kvStore, key string) *StoreSource {
	return &StoreSource{store: s, key: key}
}

// Key returns the storage key.
func (s *StoreSource) Key() string { return s.key }

// Load fetches and parses the collection.
func (s *StoreSource) Load(ctx context.Context) ([]domfaq.Document, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: key %q not found", domain.ErrCatalogSourceUnavailable, s.key)
		}
		return nil, fmt.Errorf("%w: get %q: %w", domain.ErrCatalogSourceUnavailable, s.key, err)
	}
	return decodeDocuments(data)
}

// Save replaces the stored collection.
func (s *StoreSource) Save(ctx context.Context, docs []domfaq.Document) error {
	data, err := encodeDocuments(docs)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("set %q: %w", s.key, err)
	}
	return nil
}
