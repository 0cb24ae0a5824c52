// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package caregap answers structured questions about the geographic
// distribution of healthcare capabilities over a facility/NGO dataset:
// citation-preserving semantic retrieval, medical-desert detection, and
// facility-claim validation.
//
// A System is explicitly constructed: store, index, and analyzers are
// injected, never ambient, so callers and tests can run isolated
// instances over fixture datasets. Once built, a System is read-only
// and safe for concurrent use.
package caregap

import (
	"context"
	"log/slog"

	"github.com/poiesic/caregap/ai"
	"github.com/poiesic/caregap/analysis"
	"github.com/poiesic/caregap/core"
	"github.com/poiesic/caregap/dataset"
	"github.com/poiesic/caregap/index"
	"github.com/poiesic/caregap/retrieval"
)

// System bundles the record store, vector index, retrieval service, and
// analyzers behind the engine's public API surface.
type System struct {
	store     *dataset.Store
	index     *index.Index
	searcher  *retrieval.Searcher
	detector  *analysis.GapDetector
	validator *analysis.Validator
	logger    *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	logger    *slog.Logger
	indexOpts []index.Option
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) SystemOption {
	return func(o *systemOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIndexOptions forwards options to the index build (batch size,
// pool size, progress reporting).
func WithIndexOptions(opts ...index.Option) SystemOption {
	return func(o *systemOptions) {
		o.indexOpts = append(o.indexOpts, opts...)
	}
}

// New loads the dataset at csvPath and builds a complete system over it.
func New(ctx context.Context, csvPath string, embedder ai.Embedder, opts ...SystemOption) (*System, error) {
	options := applyOptions(opts)

	store, err := dataset.Load(csvPath, dataset.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return newSystem(ctx, store, embedder, options)
}

// NewFromStore builds a system over an already-loaded store.
func NewFromStore(ctx context.Context, store *dataset.Store, embedder ai.Embedder, opts ...SystemOption) (*System, error) {
	return newSystem(ctx, store, embedder, applyOptions(opts))
}

func applyOptions(opts []SystemOption) *systemOptions {
	options := &systemOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func newSystem(ctx context.Context, store *dataset.Store, embedder ai.Embedder, options *systemOptions) (*System, error) {
	indexOpts := append([]index.Option{index.WithLogger(options.logger)}, options.indexOpts...)
	idx, err := index.Build(ctx, store, embedder, indexOpts...)
	if err != nil {
		return nil, err
	}

	searcher, err := retrieval.NewSearcher(store, idx, retrieval.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	detector, err := analysis.NewGapDetector(store, analysis.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	validator, err := analysis.NewValidator(store, analysis.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &System{
		store:     store,
		index:     idx,
		searcher:  searcher,
		detector:  detector,
		validator: validator,
		logger:    options.logger,
	}, nil
}

// Search returns up to topK ranked, citation-annotated results for a
// free-text query.
func (s *System) Search(ctx context.Context, query string, topK int) ([]core.SearchResult, error) {
	return s.searcher.Search(ctx, query, topK)
}

// DetectGap analyzes specialty/region coverage. Empty strings mean
// unconstrained.
func (s *System) DetectGap(specialty, region string) core.DesertAnalysis {
	return s.detector.Detect(specialty, region)
}

// Validate builds a claim-validation report for the named facility,
// returning core.ErrFacilityNotFound when no record matches.
func (s *System) Validate(facilityName string) (*core.ValidationReport, error) {
	return s.validator.Validate(facilityName)
}

// FilterByRegion returns all records matching region, in dataset order.
func (s *System) FilterByRegion(region string) []core.Record {
	return s.store.FilterByRegion(region)
}

// FilterBySpecialty returns all records matching specialty, in dataset
// order.
func (s *System) FilterBySpecialty(specialty string) []core.Record {
	return s.store.FilterBySpecialty(specialty)
}

// Store returns the underlying record store.
func (s *System) Store() *dataset.Store {
	return s.store
}

// Index returns the underlying vector index.
func (s *System) Index() *index.Index {
	return s.index
}
