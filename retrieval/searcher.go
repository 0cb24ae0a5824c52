package retrieval

import (
	"context"
	"log/slog"

	"github.com/poiesic/caregap/core"
	"github.com/poiesic/caregap/dataset"
	"github.com/poiesic/caregap/index"
)

// Searcher provides ranked semantic search over the indexed record corpus.
type Searcher struct {
	store  *dataset.Store
	index  *index.Index
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over a store and its index.
func NewSearcher(store *dataset.Store, idx *index.Index, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		store:  store,
		index:  idx,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns up to topK results for the query, most relevant first.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, topK, nil)
}

// SearchWithMonitor searches with monitoring callbacks at each stage.
//
// An empty index yields an empty result set; a well-formed, non-empty
// query never fails beyond embedding-service errors.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, topK int, monitor SearchMonitor) ([]core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	hits, err := s.index.Search(ctx, query, topK)
	if err != nil {
		s.logger.Error("error searching index", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterKNN(hits)

	results := make([]core.SearchResult, 0, len(hits))
	for i, hit := range hits {
		entry, ok := s.index.Entry(hit.Row)
		if !ok {
			// Index rows always resolve against the store they were
			// built from; a miss means the caller mixed instances.
			s.logger.Warn("index hit outside entry range", "row", hit.Row)
			continue
		}
		rec, ok := s.store.Record(hit.Row)
		if !ok {
			s.logger.Warn("index hit outside store range", "row", hit.Row)
			continue
		}

		results = append(results, core.SearchResult{
			Rank:             i + 1,
			Distance:         hit.Distance,
			RelevanceScore:   core.RelevanceScore(hit.Distance),
			Text:             entry.Text,
			Name:             entry.Name,
			SourceURL:        entry.SourceURL,
			RowIndex:         hit.Row,
			OrganizationType: entry.OrganizationType,
			FullRecord:       rec.Fields,
			Citation: core.Citation{
				Row:    hit.Row,
				Source: entry.SourceURL,
				Name:   entry.Name,
			},
		})
	}

	monitor.Finish(results)
	return results, nil
}
