package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/faqsearch/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultLimit   = 3
	MaxLimit       = 10
)

// CodeInvalidRequest is the machine-readable code for every validation failure.
const CodeInvalidRequest = "invalid_request"

// ValidationError is a rejected request with a machine-readable code and a human message.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrInvalidRequest.Error(), e.Message)
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidRequest }

func invalid(format string, args ...any) error {
	return &ValidationError{Code: CodeInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Request is a validated search query.
type Request struct {
	query string
	limit int
}

// New trims and validates search parameters.
// limit=0 means DefaultLimit; maxLimit<=0 means MaxLimit.
func New(query string, limit, maxLimit int) (Request, error) {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, invalid("Query must not be empty")
	}
	if len(query) > MaxQueryLength {
		return Request{}, invalid("Query too long (max %d chars)", MaxQueryLength)
	}
	if limit < 0 {
		return Request{}, invalid("Limit must be positive")
	}
	if limit == 0 {
		limit = min(DefaultLimit, maxLimit)
	}
	if limit > maxLimit {
		return Request{}, invalid("Limit must not exceed %d", maxLimit)
	}
	return Request{query: query, limit: limit}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum number of results.
func (r *Request) Limit() int { return r.limit }
