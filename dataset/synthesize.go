package dataset

import (
	"strings"

	"github.com/poiesic/caregap/core"
)

// Section separators are a commitment: changing them invalidates score
// comparability across index rebuilds, though not within one.
const (
	sectionSep = " | "
	commaSep   = ", "
	semiSep    = "; "
)

// Synthesize derives the one-line text description of a record used as
// embedding input. Sections appear in a fixed order (name, specialties,
// procedures, equipment, capabilities, location, type) and absent or
// empty fields are omitted entirely rather than replaced with
// placeholders, so sparse records don't dilute their embeddings with
// boilerplate.
func Synthesize(rec core.Record) string {
	var sections []string

	if rec.Name != "" {
		sections = append(sections, "Name: "+rec.Name)
	}
	if len(rec.Specialties) > 0 {
		sections = append(sections, "Specialties: "+strings.Join(rec.Specialties, commaSep))
	}
	if len(rec.Procedures) > 0 {
		sections = append(sections, "Procedures: "+strings.Join(rec.Procedures, semiSep))
	}
	if len(rec.Equipment) > 0 {
		sections = append(sections, "Equipment: "+strings.Join(rec.Equipment, semiSep))
	}
	if len(rec.Capabilities) > 0 {
		sections = append(sections, "Capabilities: "+strings.Join(rec.Capabilities, semiSep))
	}

	var location []string
	for _, part := range []string{rec.City, rec.Region, rec.Country} {
		if part != "" {
			location = append(location, part)
		}
	}
	if len(location) > 0 {
		sections = append(sections, "Location: "+strings.Join(location, commaSep))
	}

	if rec.FacilityType != "" {
		sections = append(sections, "Type: "+rec.FacilityType)
	}

	return strings.Join(sections, sectionSep)
}
