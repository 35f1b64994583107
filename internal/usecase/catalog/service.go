package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqsearch/internal/domain"
	"github.com/kailas-cloud/faqsearch/internal/domain/faq"
	"github.com/kailas-cloud/faqsearch/internal/metrics"
)

// Stats describes the active snapshot.
type Stats struct {
	Loaded    bool
	Documents int
	LoadedAt  time.Time
}

type snapshot struct {
	docs     []faq.Document
	loadedAt time.Time
}

// Service holds the process-wide FAQ snapshot.
// Readers never block; reloads are serialized and swap the snapshot atomically.
type Service struct {
	source  Source
	logger  *zap.Logger
	current atomic.Pointer[snapshot]
	mu      sync.Mutex
	now     func() time.Time
}

// New creates a catalog service. Nothing is loaded until Load is called.
func New(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger, now: time.Now}
}

// Load performs the initial load.
func (s *Service) Load(ctx context.Context) error {
	_, err := s.Reload(ctx)
	return err
}

// Reload re-reads the source and replaces the snapshot.
// On failure the previous snapshot stays active.
func (s *Service) Reload(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.source.Load(ctx)
	if err == nil {
		err = checkUnique(docs)
	}
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		s.logger.Error("catalog reload failed", zap.Error(err))
		return s.Stats(), fmt.Errorf("reload catalog: %w", err)
	}

	snap := &snapshot{docs: docs, loadedAt: s.now()}
	s.current.Store(snap)

	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogDocuments.Set(float64(len(docs)))
	s.logger.Info("catalog loaded", zap.Int("documents", len(docs)))

	return statsOf(snap), nil
}

// Documents returns the active snapshot. The slice is shared and must not be modified.
func (s *Service) Documents() ([]faq.Document, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return snap.docs, nil
}

// Stats reports the active snapshot size and load time.
func (s *Service) Stats() Stats {
	return statsOf(s.current.Load())
}

// Watch reloads the catalog every interval until ctx is done.
// A non-positive interval disables periodic reloads.
func (s *Service) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// failure is already logged and the old snapshot kept
			_, _ = s.Reload(ctx)
		}
	}
}

func statsOf(snap *snapshot) Stats {
	if snap == nil {
		return Stats{}
	}
	return Stats{Loaded: true, Documents: len(snap.docs), LoadedAt: snap.loadedAt}
}

func checkUnique(docs []faq.Document) error {
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.ID()]; ok {
			return fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidCatalog, d.ID())
		}
		seen[d.ID()] = struct{}{}
	}
	return nil
}
