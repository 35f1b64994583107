package result

// Result is a single ranked FAQ hit.
type Result struct {
	id      string
	title   string
	snippet string
	score   int
}

// New creates a search result.
func New(id, title, snippet string, score int) Result {
	return Result{id: id, title: title, snippet: snippet, score: score}
}

// ID returns the document identifier.
func (r Result) ID() string { return r.id }

// Title returns the document title.
func (r Result) Title() string { return r.title }

// Snippet returns the bounded body excerpt.
func (r Result) Snippet() string { return r.snippet }

// Score returns the relevance score the result was ranked by.
func (r Result) Score() int { return r.score }

// Outcome is the query-level output: ranked results, a combined summary and source ids.
type Outcome struct {
	results []Result
	summary string
	sources []string
}

// NewOutcome creates an outcome. Nil slices are normalized to empty ones.
func NewOutcome(results []Result, summary string, sources []string) Outcome {
	if results == nil {
		results = []Result{}
	}
	if sources == nil {
		sources = []string{}
	}
	return Outcome{results: results, summary: summary, sources: sources}
}

// Results returns the ranked results.
func (o Outcome) Results() []Result { return o.results }

// Summary returns the combined lead-sentence summary.
func (o Outcome) Summary() string { return o.summary }

// Sources returns the ids of the selected documents in rank order.
func (o Outcome) Sources() []string { return o.sources }

// Empty reports whether no document matched.
func (o Outcome) Empty() bool { return len(o.results) == 0 }
