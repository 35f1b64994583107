package faqsearch

import "time"

// Document is a single FAQ entry.
type Document struct {
	ID    string
	Title string
	Body  string
}

// Result is a ranked hit.
type Result struct {
	ID      string
	Title   string
	Snippet string
	Score   int
}

// Outcome is the answer to one query. Results and Sources are never nil.
type Outcome struct {
	Results []Result
	Summary string
	Sources []string
}

// CatalogStats describes the active snapshot.
type CatalogStats struct {
	Documents int
	LoadedAt  time.Time
}
