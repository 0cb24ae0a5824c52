package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/hupe1980/vecgo"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/caregap/ai"
	"github.com/poiesic/caregap/dataset"
)

// Entry is the per-record metadata the index keeps alongside each vector.
// Entries are recomputed in full whenever an index is built and never
// mutated afterwards.
type Entry struct {
	Row              int
	Text             string
	Name             string
	SourceURL        string
	OrganizationType string
}

// Hit is a single nearest-neighbor match.
type Hit struct {
	Row      int
	Distance float64
}

// Index answers k-nearest queries over the embedded record corpus.
// Immutable after Build; safe for concurrent reads.
type Index struct {
	vg       *vecgo.Vecgo[int]
	entries  []Entry
	embedder ai.Embedder
	dim      int
	logger   *slog.Logger
}

type buildOptions struct {
	batchSize int
	poolSize  int
	progress  func(done, total int)
	logger    *slog.Logger
}

// Option configures an index build.
type Option func(*buildOptions)

// WithBatchSize sets how many texts are embedded per batch request.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(o *buildOptions) {
		if size > 0 {
			o.batchSize = size
		}
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *buildOptions) {
		if size > 0 {
			o.poolSize = size
		}
	}
}

// WithProgress registers a callback invoked as batches of records finish
// embedding. done is monotonically non-decreasing and reaches total
// exactly when the build succeeds.
func WithProgress(fn func(done, total int)) Option {
	return func(o *buildOptions) {
		o.progress = fn
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Build embeds every record in the store and constructs the index.
//
// Embedding is fanned out across a worker pool in fixed batches and the
// resulting vectors are merged back in original row order before
// insertion, so construction order stays row-aligned with the store.
func Build(ctx context.Context, store *dataset.Store, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	options := &buildOptions{
		batchSize: 32,
		poolSize:  max(runtime.NumCPU()/2, 1),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger.With("component", "index")

	records := store.Records()
	entries := make([]Entry, len(records))
	texts := make([]string, len(records))
	for i, rec := range records {
		text := dataset.Synthesize(rec)
		orgType := rec.OrganizationType
		if orgType == "" {
			orgType = "facility"
		}
		entries[i] = Entry{
			Row:              i,
			Text:             text,
			Name:             rec.Name,
			SourceURL:        rec.SourceURL,
			OrganizationType: orgType,
		}
		texts[i] = text
	}

	idx := &Index{
		entries:  entries,
		embedder: embedder,
		logger:   logger,
	}

	if len(texts) == 0 {
		logger.Warn("building index over empty store")
		return idx, nil
	}

	logger.Info("building index", "records", len(texts), "batchSize", options.batchSize, "poolSize", options.poolSize)

	vectors, err := embedAll(ctx, embedder, texts, options)
	if err != nil {
		return nil, err
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d", ErrEmbeddingMismatch, i, len(v), dim)
		}
	}
	if dim == 0 {
		return nil, fmt.Errorf("%w: embedder returned zero-dimension vectors", ErrEmbeddingMismatch)
	}

	vg, err := vecgo.Flat[int](dim).SquaredL2().Build()
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	items := make([]vecgo.VectorWithData[int], len(vectors))
	for i, v := range vectors {
		items[i] = vecgo.VectorWithData[int]{Vector: v, Data: i}
	}

	result := vg.BatchInsert(ctx, items)
	for i, insertErr := range result.Errors {
		if insertErr != nil {
			return nil, fmt.Errorf("inserting vector for row %d: %w", i, insertErr)
		}
	}

	idx.vg = vg
	idx.dim = dim
	logger.Info("index built", "records", len(entries), "dimension", dim)
	return idx, nil
}

// embedAll embeds texts in batches across a worker pool, merging results
// by original position. Any batch failure fails the whole call.
func embedAll(ctx context.Context, embedder ai.Embedder, texts []string, options *buildOptions) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	numBatches := (len(texts) + options.batchSize - 1) / options.batchSize
	batchErrs := make([]error, numBatches)

	pool, err := ants.NewPool(options.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	report := func(n int) {
		if options.progress == nil {
			return
		}
		mu.Lock()
		done += n
		options.progress(done, len(texts))
		mu.Unlock()
	}

	for b := 0; b < numBatches; b++ {
		start := b * options.batchSize
		end := min(start+options.batchSize, len(texts))

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			batch, err := embedder.EmbedTexts(ctx, texts[start:end])
			if err != nil {
				batchErrs[b] = err
				return
			}
			if len(batch) != end-start {
				batchErrs[b] = fmt.Errorf("%w: expected %d vectors, received %d", ErrEmbeddingMismatch, end-start, len(batch))
				return
			}
			copy(vectors[start:end], batch)
			report(end - start)
		})
		if submitErr != nil {
			wg.Done()
			batchErrs[b] = submitErr
		}
	}
	wg.Wait()

	for _, err := range batchErrs {
		if err != nil {
			return nil, fmt.Errorf("embedding corpus: %w", err)
		}
	}
	return vectors, nil
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Dimension returns the embedding dimension, or 0 for an empty index.
func (idx *Index) Dimension() int {
	return idx.dim
}

// Entry returns the index entry for a row.
func (idx *Index) Entry(row int) (Entry, bool) {
	if row < 0 || row >= len(idx.entries) {
		return Entry{}, false
	}
	return idx.entries[row], true
}

// Search embeds the query text and returns up to k nearest entries as
// (row, distance) pairs sorted by ascending distance. k is clamped to
// [0, Len()]; an empty index or k of zero yields no hits, not an error.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if k <= 0 || idx.Len() == 0 {
		return nil, nil
	}
	if k > idx.Len() {
		k = idx.Len()
	}

	vector, err := idx.embedder.EmbedText(ctx, query)
	if err != nil {
		idx.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	results, err := idx.vg.KNNSearch(ctx, vector, k)
	if err != nil {
		idx.logger.Error("error querying vector store", "k", k, "err", err)
		return nil, err
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{Row: r.Data, Distance: float64(r.Distance)}
	}

	// Exact search plus a row tiebreak keeps results fully deterministic.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Row < hits[j].Row
	})

	return hits, nil
}

