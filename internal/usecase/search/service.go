package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqsearch/internal/domain/search/request"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/faqsearch/internal/logger"
	"github.com/kailas-cloud/faqsearch/internal/metrics"
)

// Service answers validated search requests against the current catalog snapshot.
type Service struct {
	catalog CatalogReader
}

// New creates a search service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// Search ranks the catalog for req. An outcome without results is not an error.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Outcome, error) {
	docs, err := s.catalog.Documents()
	if err != nil {
		return result.Outcome{}, fmt.Errorf("read catalog: %w", err)
	}

	start := time.Now()
	out := Search(docs, req.Query(), req.Limit())
	duration := time.Since(start)

	outcome := "match"
	if out.Empty() {
		outcome = "no_match"
	}
	metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchResultsPerQuery.Observe(float64(len(out.Results())))
	metrics.SearchDuration.Observe(duration.Seconds())

	logpkg.FromContext(ctx).Debug("search completed",
		zap.Int("terms", len(Tokenize(req.Query()))),
		zap.Int("limit", req.Limit()),
		zap.Int("documents", len(docs)),
		zap.Int("results", len(out.Results())),
		zap.Strings("sources", out.Sources()),
		zap.Duration("duration", duration),
	)

	return out, nil
}
