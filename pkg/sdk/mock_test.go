package faqsearch

import (
	"context"

	"github.com/kailas-cloud/faqsearch/internal/domain/search/request"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/result"
	cataloguc "github.com/kailas-cloud/faqsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/faqsearch/internal/usecase/health"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	reloadFn func(ctx context.Context) (cataloguc.Stats, error)
	stats    cataloguc.Stats
}

func (m *mockCatalogUC) Reload(ctx context.Context) (cataloguc.Stats, error) {
	return m.reloadFn(ctx)
}

func (m *mockCatalogUC) Stats() cataloguc.Stats { return m.stats }

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (result.Outcome, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (result.Outcome, error) {
	return m.searchFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
