package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/faqsearch/internal/domain/faq"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/request"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/result"
)

// Scoring and excerpt constants. Lengths are counted in runes.
const (
	titleWeight = 3
	bodyWeight  = 1

	// SnippetMaxLen is the default excerpt length.
	SnippetMaxLen     = 120
	snippetLookBehind = 20

	summaryMaxLen   = 280
	leadFallbackLen = 80

	ellipsis = "…"
)

// Scored pairs a document with its relevance score.
type Scored struct {
	Document faq.Document
	Score    int
}

// Tokenize splits a query on runs of whitespace. Case is preserved and
// repeated terms are kept.
func Tokenize(query string) []string {
	return strings.Fields(query)
}

// Score sums title*3 + body*1 literal, case-insensitive, non-overlapping
// occurrence counts over all terms.
func Score(doc faq.Document, terms []string) int {
	title := fold(doc.Title())
	body := fold(doc.Body())

	score := 0
	for _, t := range terms {
		if t == "" {
			continue
		}
		term := fold(t)
		score += strings.Count(title, term)*titleWeight + strings.Count(body, term)*bodyWeight
	}
	return score
}

// Rank scores every document, drops zero scores and returns at most limit
// entries ordered by descending score. Equal scores keep input order.
func Rank(docs []faq.Document, terms []string, limit int) []Scored {
	scored := make([]Scored, 0, len(docs))
	for _, d := range docs {
		if s := Score(d, terms); s > 0 {
			scored = append(scored, Scored{Document: d, Score: s})
		}
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Snippet returns an excerpt of at most maxLen runes starting 20 runes before
// the earliest term hit, with "…" marking truncation on either side.
// Without a hit it returns the head of the body. maxLen<=0 means SnippetMaxLen.
func Snippet(body string, terms []string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = SnippetMaxLen
	}
	runes := []rune(body)
	lower := fold(body)

	idx := -1
	for _, t := range terms {
		if t == "" {
			continue
		}
		if i := strings.Index(lower, fold(t)); i >= 0 && (idx == -1 || i < idx) {
			idx = i
		}
	}

	if idx == -1 {
		if len(runes) > maxLen {
			return string(runes[:maxLen]) + ellipsis
		}
		return body
	}

	// fold maps rune-for-rune, so the rune offset in lower is valid in body.
	start := max(0, utf8.RuneCountInString(lower[:idx])-snippetLookBehind)
	end := min(len(runes), start+maxLen)

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	if start+maxLen < len(runes) {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// Summarize joins the lead sentence of each document with a single space and
// hard-cuts the result to 280 runes.
func Summarize(docs []faq.Document) string {
	leads := make([]string, len(docs))
	for i, d := range docs {
		leads[i] = leadSentence(d.Body())
	}
	return truncateRunes(strings.Join(leads, " "), summaryMaxLen)
}

// Search runs the whole pipeline over an in-memory collection.
// It never mutates docs and holds no state between calls.
// limit<=0 means request.DefaultLimit.
func Search(docs []faq.Document, query string, limit int) result.Outcome {
	if limit <= 0 {
		limit = request.DefaultLimit
	}
	terms := Tokenize(query)
	top := Rank(docs, terms, limit)

	results := make([]result.Result, len(top))
	sources := make([]string, len(top))
	selected := make([]faq.Document, len(top))
	for i, s := range top {
		d := s.Document
		results[i] = result.New(d.ID(), d.Title(), Snippet(d.Body(), terms, SnippetMaxLen), s.Score)
		sources[i] = d.ID()
		selected[i] = d
	}

	return result.NewOutcome(results, Summarize(selected), sources)
}

// leadSentence returns the body up to the first '.', '?' or '!' that is
// followed by whitespace, or the first 80 runes when that segment is empty.
func leadSentence(body string) string {
	end := len(body)
	for i := 0; i < len(body); i++ {
		if c := body[i]; c != '.' && c != '?' && c != '!' {
			continue
		}
		if next, _ := utf8.DecodeRuneInString(body[i+1:]); unicode.IsSpace(next) {
			end = i
			break
		}
	}
	if end == 0 {
		return truncateRunes(body, leadFallbackLen)
	}
	return body[:end]
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// fold lower-cases rune by rune so rune offsets survive.
func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}
