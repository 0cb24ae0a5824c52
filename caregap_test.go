package caregap

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/caregap/ai/mock"
	"github.com/poiesic/caregap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureCSV(t *testing.T) string {
	t.Helper()

	rows := [][]string{
		{"name", "specialties", "address_city", "address_stateOrRegion", "facilityTypeId", "capacity", "source_url"},
		{"Tamale Heart Center", `["cardiology"]`, "Tamale", "Northern", "hospital", "120", "https://example.org/thc"},
		{"Bolga Cardio Clinic", `["cardiology"]`, "Bolgatanga", "Northern", "clinic", "5000", "https://example.org/bcc"},
		{"Accra Skin Clinic", `["dermatology"]`, "Accra", "Greater Accra", "clinic", "30", "https://example.org/asc"},
		{"Cape Coast Hospital", `["cardiology", "oncology"]`, "Cape Coast", "Central", "hospital", "400", "https://example.org/cch"},
	}

	path := filepath.Join(t.TempDir(), "facilities.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())
	return path
}

func fixtureSystem(t *testing.T) *System {
	t.Helper()

	system, err := New(context.Background(), fixtureCSV(t), mock.NewMockEmbedder())
	require.NoError(t, err)
	return system
}

func TestNew(t *testing.T) {
	t.Run("builds a complete system", func(t *testing.T) {
		system := fixtureSystem(t)
		assert.Equal(t, 4, system.Store().Len())
		assert.Equal(t, 4, system.Index().Len())
	})

	t.Run("dataset error propagates", func(t *testing.T) {
		_, err := New(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), mock.NewMockEmbedder())
		assert.ErrorIs(t, err, core.ErrDataset)
	})
}

func TestSystemSearch(t *testing.T) {
	ctx := context.Background()
	system := fixtureSystem(t)

	results, err := system.Search(ctx, "cardiology hospitals in the north", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Ranks ascend with distance; every result cites a live record.
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
		rec, ok := system.Store().Record(r.Citation.Row)
		require.True(t, ok)
		assert.Equal(t, rec.Name, r.Citation.Name)
	}

	// Determinism: identical query, identical results.
	again, err := system.Search(ctx, "cardiology hospitals in the north", 3)
	require.NoError(t, err)
	assert.Equal(t, results, again)
}

func TestSystemDetectGap(t *testing.T) {
	system := fixtureSystem(t)

	analysis := system.DetectGap("cardiology", "Northern")
	require.NotNil(t, analysis.SpecialtyFacilities)
	assert.Equal(t, 2, *analysis.SpecialtyFacilities)
	assert.True(t, analysis.IsMedicalDesert)
	assert.Equal(t, core.SeveritySevere, analysis.DesertSeverity)
	assert.Len(t, analysis.Citations, 2)
}

func TestSystemValidate(t *testing.T) {
	system := fixtureSystem(t)

	t.Run("suspicious capacity flagged", func(t *testing.T) {
		report, err := system.Validate("Bolga Cardio Clinic")
		require.NoError(t, err)
		require.Len(t, report.SuspiciousClaims, 1)
		assert.Contains(t, report.SuspiciousClaims[0], "bed capacity")
	})

	t.Run("ordinary capacity not flagged", func(t *testing.T) {
		report, err := system.Validate("Tamale Heart Center")
		require.NoError(t, err)
		assert.Empty(t, report.SuspiciousClaims)
	})

	t.Run("unknown facility", func(t *testing.T) {
		_, err := system.Validate("unknown-name-xyz")
		assert.ErrorIs(t, err, core.ErrFacilityNotFound)
	})
}

func TestSystemFilters(t *testing.T) {
	system := fixtureSystem(t)

	northern := system.FilterByRegion("northern")
	assert.Len(t, northern, 2)

	cardio := system.FilterBySpecialty("Cardiology")
	assert.Len(t, cardio, 3)
}
