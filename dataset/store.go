package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/poiesic/caregap/core"
)

// Store holds the loaded dataset. Immutable after Load returns.
type Store struct {
	columns []string
	records []core.Record
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// Load reads a CSV dataset from path, one row per facility/NGO.
// The schema must contain at least the "name" column; any failure to
// read or parse the file wraps core.ErrDataset.
func Load(path string, opts ...Option) (*Store, error) {
	s := &Store{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "dataset")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", core.ErrDataset, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", core.ErrDataset, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", core.ErrDataset, path)
	}

	columns := rows[0]
	if !slices.Contains(columns, core.ColName) {
		return nil, fmt.Errorf("%w: %w", core.ErrDataset, core.ErrMissingNameColumn)
	}

	s.columns = columns
	s.records = make([]core.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		s.records = append(s.records, buildRecord(columns, row))
	}

	s.logger.Info("dataset loaded", "path", path, "records", len(s.records), "columns", len(columns))
	return s, nil
}

// buildRecord maps one CSV row onto the typed record plus raw passthrough.
func buildRecord(columns, row []string) core.Record {
	fields := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(row) {
			fields[col] = row[i]
		} else {
			fields[col] = ""
		}
	}

	return core.Record{
		Name:             fields[core.ColName],
		Specialties:      core.ParseStringListLenient(fields[core.ColSpecialties]),
		Procedures:       core.ParseStringListLenient(fields[core.ColProcedure]),
		Equipment:        core.ParseStringListLenient(fields[core.ColEquipment]),
		Capabilities:     core.ParseStringListLenient(fields[core.ColCapability]),
		City:             fields[core.ColCity],
		Region:           fields[core.ColRegion],
		Country:          fields[core.ColCountry],
		FacilityType:     fields[core.ColFacilityType],
		OrganizationType: fields[core.ColOrganizationType],
		SourceURL:        fields[core.ColSourceURL],
		Fields:           fields,
	}
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Columns returns the dataset column names in file order.
func (s *Store) Columns() []string {
	return s.columns
}

// Record returns the record at row index i.
// The second return is false when i is out of range.
func (s *Store) Record(i int) (core.Record, bool) {
	if i < 0 || i >= len(s.records) {
		return core.Record{}, false
	}
	return s.records[i], true
}

// Records returns all records in load order. The returned slice is the
// store's backing storage and must not be modified.
func (s *Store) Records() []core.Record {
	return s.records
}

// GetByName returns the first record whose name matches name
// case-insensitively, along with its row index.
func (s *Store) GetByName(name string) (core.Record, int, bool) {
	lowered := strings.ToLower(name)
	for i, rec := range s.records {
		if strings.ToLower(rec.Name) == lowered {
			return rec, i, true
		}
	}
	return core.Record{}, 0, false
}

// FilterByRegion returns all records matching region per RegionMatches,
// in load order.
func (s *Store) FilterByRegion(region string) []core.Record {
	var matched []core.Record
	for _, rec := range s.records {
		if RegionMatches(rec, region) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// FilterBySpecialty returns all records matching specialty per
// SpecialtyMatches, in load order.
func (s *Store) FilterBySpecialty(specialty string) []core.Record {
	var matched []core.Record
	for _, rec := range s.records {
		if SpecialtyMatches(rec, specialty) {
			matched = append(matched, rec)
		}
	}
	return matched
}
