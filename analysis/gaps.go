package analysis

import (
	"log/slog"
	"strings"

	"github.com/poiesic/caregap/core"
	"github.com/poiesic/caregap/dataset"
)

// Medical-desert thresholds on the specialty facility count. Exact
// policy constants: a count of 3 is moderate, not severe; 5 is none,
// not moderate.
const (
	severeBelow   = 3
	moderateBelow = 5
)

// Option configures analysis components.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GapDetector classifies specialty/region coverage over a record store.
type GapDetector struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewGapDetector creates a gap detector over a store.
func NewGapDetector(store *dataset.Store, opts ...Option) (*GapDetector, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	o := newOptions(opts)
	return &GapDetector{
		store:  store,
		logger: o.logger.With("component", "gap-detector"),
	}, nil
}

// Detect analyzes coverage for an optional specialty and region; an
// empty string means unconstrained. Severity is only classified when a
// specialty is named; the detector never flags a desert for "any
// specialty in region". Detect never fails.
func (d *GapDetector) Detect(specialty, region string) core.DesertAnalysis {
	analysis := core.DesertAnalysis{
		Specialty:           specialty,
		Region:              region,
		TotalFacilities:     d.store.Len(),
		DesertSeverity:      core.SeverityNone,
		AvailableFacilities: []core.FacilitySummary{},
		Citations:           []core.Citation{},
	}

	// Row indexes survive filtering so citations stay traceable.
	regional := make([]int, 0, d.store.Len())
	for i, rec := range d.store.Records() {
		if region != "" && !dataset.RegionMatches(rec, region) {
			continue
		}
		regional = append(regional, i)
	}
	if region != "" {
		n := len(regional)
		analysis.RegionalFacilities = &n
	}

	pool := regional
	if specialty != "" {
		pool = make([]int, 0, len(regional))
		for _, row := range regional {
			rec, _ := d.store.Record(row)
			if dataset.SpecialtyMatches(rec, specialty) {
				pool = append(pool, row)
			}
		}
		n := len(pool)
		analysis.SpecialtyFacilities = &n

		switch {
		case n == 0:
			analysis.IsMedicalDesert = true
			analysis.DesertSeverity = core.SeverityCritical
		case n < severeBelow:
			analysis.IsMedicalDesert = true
			analysis.DesertSeverity = core.SeveritySevere
		case n < moderateBelow:
			analysis.DesertSeverity = core.SeverityModerate
		}
	}

	for _, row := range pool {
		rec, _ := d.store.Record(row)
		analysis.AvailableFacilities = append(analysis.AvailableFacilities, core.FacilitySummary{
			Name:     rec.Name,
			Location: formatLocation(rec),
			RowIndex: row,
		})
		analysis.Citations = append(analysis.Citations, core.Citation{
			Row:    row,
			Source: rec.SourceURL,
			Name:   rec.Name,
		})
	}

	d.logger.Debug("gap analysis complete",
		"specialty", specialty, "region", region,
		"pool", len(pool), "severity", analysis.DesertSeverity.String())

	return analysis
}

func formatLocation(rec core.Record) string {
	var parts []string
	if rec.City != "" {
		parts = append(parts, rec.City)
	}
	if rec.Region != "" {
		parts = append(parts, rec.Region)
	}
	return strings.Join(parts, ", ")
}
