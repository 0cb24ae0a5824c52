package analysis

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/poiesic/caregap/core"
	"github.com/poiesic/caregap/dataset"
)

// Columns whose absence is called out by name in a validation report.
var criticalColumns = []string{
	core.ColCountry,
	core.ColCity,
	core.ColFacilityType,
	core.ColSpecialties,
}

// claimRule is one independent suspicion heuristic. Rules never abort a
// report: a parse failure is returned as err and recorded as a data
// quality issue, a triggered rule contributes its flag string.
type claimRule struct {
	name string
	eval func(rec core.Record) (flag string, triggered bool, err error)
}

// defaultClaimRules returns the registered heuristic table. Every rule
// is evaluated on every report; findings are not mutually exclusive.
func defaultClaimRules() []claimRule {
	return []claimRule{
		{
			name: "capacity",
			eval: func(rec core.Record) (string, bool, error) {
				raw := rec.Fields[core.ColCapacity]
				if core.IsEmptyValue(raw) {
					return "", false, nil
				}
				capacity, err := core.ParseNumber(raw)
				if err != nil {
					return "", false, fmt.Errorf("capacity: %w", err)
				}
				if capacity <= 1000 {
					return "", false, nil
				}
				return fmt.Sprintf("Very high bed capacity claimed: %s beds (unusual for most facilities)",
					formatNumber(capacity)), true, nil
			},
		},
		{
			name: "doctor-count",
			eval: func(rec core.Record) (string, bool, error) {
				raw := rec.Fields[core.ColNumberDoctors]
				if core.IsEmptyValue(raw) {
					return "", false, nil
				}
				doctors, err := core.ParseNumber(raw)
				if err != nil {
					return "", false, fmt.Errorf("numberDoctors: %w", err)
				}
				if doctors <= 200 {
					return "", false, nil
				}
				return fmt.Sprintf("Very high doctor count: %s doctors", formatNumber(doctors)), true, nil
			},
		},
		{
			name: "specialty-breadth",
			eval: func(rec core.Record) (string, bool, error) {
				raw := rec.Fields[core.ColSpecialties]
				if core.IsEmptyValue(raw) {
					return "", false, nil
				}
				specialties, err := core.ParseStringList(raw)
				if err != nil {
					return "", false, fmt.Errorf("specialties: %w", err)
				}
				if len(specialties) <= 15 {
					return "", false, nil
				}
				return fmt.Sprintf("Unusually broad specialty coverage: %d specialties", len(specialties)), true, nil
			},
		},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validator checks a single facility's claims for completeness and
// anomalies.
type Validator struct {
	store  *dataset.Store
	rules  []claimRule
	logger *slog.Logger
}

// NewValidator creates a validator over a store with the default
// heuristic table.
func NewValidator(store *dataset.Store, opts ...Option) (*Validator, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	o := newOptions(opts)
	return &Validator{
		store:  store,
		rules:  defaultClaimRules(),
		logger: o.logger.With("component", "validator"),
	}, nil
}

// Validate builds a validation report for the named facility. The name
// lookup is case-insensitive; core.ErrFacilityNotFound is returned when
// nothing matches.
//
// The completeness score counts critical fields twice, once as
// critical fields and once among all fields, against a denominator of
// total field count. Fully-populated records therefore score above
// 100; consumers treat the score as a relative signal, not a
// percentage.
func (v *Validator) Validate(facilityName string) (*core.ValidationReport, error) {
	rec, row, ok := v.store.GetByName(facilityName)
	if !ok {
		return nil, core.ErrFacilityNotFound
	}

	report := &core.ValidationReport{
		FacilityName:          rec.Name,
		SuspiciousClaims:      []string{},
		MissingCriticalFields: []string{},
		DataQualityIssues:     []string{},
		Citation: core.Citation{
			Row:    row,
			Source: rec.SourceURL,
			Name:   rec.Name,
		},
	}

	filled := 0
	for _, col := range criticalColumns {
		if !core.IsEmptyValue(rec.Fields[col]) {
			filled++
		} else {
			report.MissingCriticalFields = append(report.MissingCriticalFields, col)
		}
	}
	for _, value := range rec.Fields {
		if !core.IsEmptyValue(value) {
			filled++
		}
	}
	if total := len(rec.Fields); total > 0 {
		report.CompletenessScore = math.Round(float64(filled)/float64(total)*100*100) / 100
	}

	for _, rule := range v.rules {
		flag, triggered, err := rule.eval(rec)
		if err != nil {
			// Heuristic evaluation is best-effort: record and continue.
			v.logger.Debug("claim rule failed to evaluate", "rule", rule.name, "facility", rec.Name, "err", err)
			report.DataQualityIssues = append(report.DataQualityIssues, fmt.Sprintf("Error parsing data: %v", err))
			continue
		}
		if triggered {
			report.SuspiciousClaims = append(report.SuspiciousClaims, flag)
		}
	}

	return report, nil
}
