package dataset

import (
	"strings"

	"github.com/poiesic/caregap/core"
)

// RegionMatches reports whether region is a case-insensitive substring
// of the record's state/region or city. Absent fields never match; the
// predicate is total and never fails.
func RegionMatches(rec core.Record, region string) bool {
	if region == "" {
		return false
	}
	lowered := strings.ToLower(region)
	if rec.Region != "" && strings.Contains(strings.ToLower(rec.Region), lowered) {
		return true
	}
	if rec.City != "" && strings.Contains(strings.ToLower(rec.City), lowered) {
		return true
	}
	return false
}

// SpecialtyMatches reports whether specialty is present, case-insensitively,
// in the record's parsed specialties list. Malformed or absent specialty
// data yields false, never an error.
func SpecialtyMatches(rec core.Record, specialty string) bool {
	if specialty == "" {
		return false
	}
	lowered := strings.ToLower(specialty)
	for _, s := range rec.Specialties {
		if strings.ToLower(s) == lowered {
			return true
		}
	}
	return false
}
