package chi

import (
	"time"

	"github.com/kailas-cloud/faqsearch/internal/domain/search/request"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/result"
)

// Error codes returned in the error envelope.
const (
	codeInvalidRequest     = request.CodeInvalidRequest
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeUnauthorized       = "unauthorized"
	codeCatalogUnavailable = "catalog_unavailable"
	codeInvalidCatalog     = "invalid_catalog"
	codeInternalError      = "internal_error"
)

const noMatchesMessage = "No matches found"

// searchRequest is the POST /api/search body. A zero limit means the default.
type searchRequest struct {
	Query *string `json:"query"`
	Limit int     `json:"limit,omitempty"`
}

type resultItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Results []resultItem `json:"results"`
	Message string       `json:"message,omitempty"`
	Summary string       `json:"summary"`
	Sources []string     `json:"sources"`
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type reloadResponse struct {
	Status    string    `json:"status"`
	Documents int       `json:"documents"`
	LoadedAt  time.Time `json:"loaded_at"`
}

func searchResponseFrom(out result.Outcome) searchResponse {
	rs := out.Results()
	items := make([]resultItem, len(rs))
	for i := range rs {
		items[i] = resultItem{ID: rs[i].ID(), Title: rs[i].Title(), Snippet: rs[i].Snippet()}
	}

	resp := searchResponse{
		Results: items,
		Summary: out.Summary(),
		Sources: out.Sources(),
	}
	if out.Empty() {
		resp.Message = noMatchesMessage
	}
	return resp
}
