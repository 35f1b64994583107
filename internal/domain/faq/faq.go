package faq

import "fmt"

// MaxIDLength is the maximum document identifier length in bytes.
const MaxIDLength = 256

// Document is a single FAQ entry (immutable value object).
type Document struct {
	id    string
	title string
	body  string
}

// New validates and creates a Document.
// Title and body may be empty; such entries simply never match a query.
func New(id, title, body string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("document ID too long (max %d)", MaxIDLength)
	}
	return Document{id: id, title: title, body: body}, nil
}

// Reconstruct creates a Document without validation (test fixtures, hydration of trusted data).
func Reconstruct(id, title, body string) Document {
	return Document{id: id, title: title, body: body}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Title returns the short title.
func (d Document) Title() string { return d.title }

// Body returns the free-text answer.
func (d Document) Body() string { return d.body }
