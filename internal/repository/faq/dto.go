package faq

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/faqsearch/internal/domain"
	domfaq "github.com/kailas-cloud/faqsearch/internal/domain/faq"
)

// docRow is the JSON representation of a single FAQ entry.
type docRow struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// decodeDocuments parses a JSON array of FAQ entries.
// Any malformed entry rejects the whole collection.
func decodeDocuments(data []byte) ([]domfaq.Document, error) {
	var rows []docRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", domain.ErrInvalidCatalog, err)
	}

	docs := make([]domfaq.Document, 0, len(rows))
	for i, r := range rows {
		doc, err := domfaq.New(r.ID, r.Title, r.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", domain.ErrInvalidCatalog, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// encodeDocuments serializes documents into the JSON array format.
func encodeDocuments(docs []domfaq.Document) ([]byte, error) {
	rows := make([]docRow, len(docs))
	for i, d := range docs {
		rows[i] = docRow{ID: d.ID(), Title: d.Title(), Body: d.Body()}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	return data, nil
}
