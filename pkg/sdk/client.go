package faqsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/faqsearch/internal/db"
	dbRedis "github.com/kailas-cloud/faqsearch/internal/db/redis"
	"github.com/kailas-cloud/faqsearch/internal/domain/faq"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/request"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/result"
	faqrepo "github.com/kailas-cloud/faqsearch/internal/repository/faq"
	cataloguc "github.com/kailas-cloud/faqsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/faqsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/faqsearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKey              = "faqsearch:faqs"
)

// Internal interfaces, swapped for mocks in tests.
type catalogUseCase interface {
	Reload(ctx context.Context) (cataloguc.Stats, error)
	Stats() cataloguc.Stats
}

type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Outcome, error)
}

// Client is the faqsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	catalog   catalogUseCase
	searchSvc searchUseCase
	healthSvc healthUseCase
	maxLimit  int
	obs       *observer
}

// New creates a Client and loads the catalog.
// Exactly one source must be configured: WithFile, WithDocuments, or WithValkey/WithRedis.
// The provided context is used for the readiness check and the initial load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{key: defaultKey, maxLimit: request.MaxLimit}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var (
		source cataloguc.Source
		store  db.Store
	)
	switch n := countSources(cfg); {
	case n == 0:
		return nil, errors.New("faqsearch: catalog source required (use WithFile, WithDocuments, WithValkey or WithRedis)")
	case n > 1:
		return nil, errors.New("faqsearch: only one catalog source may be configured")
	case cfg.hasDocs:
		source = staticSource(cfg.documents)
	case cfg.path != "":
		source = faqrepo.NewFileSource(cfg.path)
	default:
		store, err = createStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		source = faqrepo.NewStoreSource(store, cfg.key)
	}

	c := wireClient(source, store, cfg, obs)
	if _, err := c.Reload(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func countSources(cfg *clientConfig) int {
	n := 0
	if cfg.hasDocs {
		n++
	}
	if cfg.path != "" {
		n++
	}
	if len(cfg.addrs) > 0 {
		n++
	}
	return n
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
	default:
		return nil, fmt.Errorf("faqsearch: unknown driver %q", cfg.driver)
	}

	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("faqsearch: create %s store: %w", cfg.driver, err)
	}

	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("faqsearch: database not ready: %w", err)
	}
	return s, nil
}

func wireClient(source cataloguc.Source, store db.Store, cfg *clientConfig, obs *observer) *Client {
	catalogSvc := cataloguc.New(source, nil)

	// Pass a nil interface, not a typed nil pointer, when there is no store.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:     store,
		catalog:   catalogSvc,
		searchSvc: searchuc.New(catalogSvc),
		healthSvc: healthuc.New(catalogSvc, pinger),
		maxLimit:  cfg.maxLimit,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search runs a query against the current snapshot.
// limit=0 means the default of 3. A query without matches returns an empty Outcome and no error.
func (c *Client) Search(ctx context.Context, query string, limit int) (out Outcome, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "results", len(out.Results)) }()

	req, err := request.New(query, limit, c.maxLimit)
	if err != nil {
		return Outcome{}, err
	}

	res, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return Outcome{}, fmt.Errorf("search: %w", err)
	}
	return outcomeFromDomain(res), nil
}

// Reload re-reads the catalog source. On failure the previous snapshot stays active.
func (c *Client) Reload(ctx context.Context) (st CatalogStats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err, "documents", st.Documents) }()

	s, err := c.catalog.Reload(ctx)
	if err != nil {
		return statsFromDomain(c.catalog.Stats()), err
	}
	return statsFromDomain(s), nil
}

// Stats describes the active snapshot.
func (c *Client) Stats() CatalogStats {
	return statsFromDomain(c.catalog.Stats())
}

// staticSource serves a fixed document list, validated on every load.
type staticSource []Document

func (s staticSource) Load(_ context.Context) ([]faq.Document, error) {
	docs := make([]faq.Document, 0, len(s))
	for i, d := range s {
		doc, err := faq.New(d.ID, d.Title, d.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidCatalog, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func outcomeFromDomain(o result.Outcome) Outcome {
	rs := o.Results()
	out := Outcome{
		Results: make([]Result, len(rs)),
		Summary: o.Summary(),
		Sources: append([]string{}, o.Sources()...),
	}
	for i := range rs {
		out.Results[i] = Result{
			ID:      rs[i].ID(),
			Title:   rs[i].Title(),
			Snippet: rs[i].Snippet(),
			Score:   rs[i].Score(),
		}
	}
	return out
}

func statsFromDomain(s cataloguc.Stats) CatalogStats {
	return CatalogStats{Documents: s.Documents, LoadedAt: s.LoadedAt}
}
