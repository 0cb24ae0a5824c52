package index

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/caregap/ai/mock"
	"github.com/poiesic/caregap/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStore(t *testing.T, rows [][]string) *dataset.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "facilities.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())

	store, err := dataset.Load(path)
	require.NoError(t, err)
	return store
}

func fixtureStore(t *testing.T) *dataset.Store {
	t.Helper()
	return writeStore(t, [][]string{
		{"name", "specialties", "address_city", "organization_type", "source_url"},
		{"Alpha Hospital", `["cardiology"]`, "Accra", "facility", "https://example.org/a"},
		{"Beta Clinic", `["pediatrics"]`, "Tamale", "ngo", "https://example.org/b"},
		{"Gamma Center", `["oncology"]`, "Kumasi", "", "https://example.org/c"},
		{"Delta Post", "[]", "Ho", "facility", "https://example.org/d"},
	})
}

// plannedEmbedder assigns each record the vector (row, 0) and every query
// the origin, so squared-L2 distances to the query are row².
func plannedEmbedder(t *testing.T, store *dataset.Store) *mock.MockEmbedder {
	t.Helper()

	vecFor := make(map[string][]float32, store.Len())
	for i, rec := range store.Records() {
		vecFor[dataset.Synthesize(rec)] = []float32{float32(i), 0}
	}

	emb := mock.NewMockEmbedder()
	emb.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			v, ok := vecFor[text]
			require.True(t, ok, "unexpected text %q", text)
			out[i] = v
		}
		return out, nil
	}
	emb.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{0, 0}, nil
	}
	return emb
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("nil store", func(t *testing.T) {
		_, err := Build(ctx, nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrStoreRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := Build(ctx, fixtureStore(t), nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("indexes every record", func(t *testing.T) {
		store := fixtureStore(t)
		idx, err := Build(ctx, store, plannedEmbedder(t, store))
		require.NoError(t, err)
		assert.Equal(t, 4, idx.Len())
		assert.Equal(t, 2, idx.Dimension())
	})

	t.Run("embedding failure aborts whole build", func(t *testing.T) {
		store := fixtureStore(t)
		emb := mock.NewMockEmbedder()
		emb.EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}

		_, err := Build(ctx, store, emb)
		assert.Error(t, err)
	})

	t.Run("vector count mismatch aborts whole build", func(t *testing.T) {
		store := fixtureStore(t)
		emb := mock.NewMockEmbedder()
		emb.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, 0, len(texts))
			for range texts[:len(texts)-1] {
				out = append(out, []float32{1, 0})
			}
			return out, nil
		}

		_, err := Build(ctx, store, emb)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmbeddingMismatch)
	})

	t.Run("empty store builds empty index", func(t *testing.T) {
		store := writeStore(t, [][]string{{"name"}})
		idx, err := Build(ctx, store, mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("progress reaches total", func(t *testing.T) {
		store := fixtureStore(t)
		var last int
		_, err := Build(ctx, store, plannedEmbedder(t, store),
			WithBatchSize(2), WithPoolSize(2),
			WithProgress(func(done, total int) {
				assert.Equal(t, 4, total)
				last = done
			}))
		require.NoError(t, err)
		assert.Equal(t, 4, last)
	})
}

func TestEntry(t *testing.T) {
	ctx := context.Background()
	store := fixtureStore(t)
	idx, err := Build(ctx, store, plannedEmbedder(t, store))
	require.NoError(t, err)

	entry, ok := idx.Entry(1)
	require.True(t, ok)
	assert.Equal(t, 1, entry.Row)
	assert.Equal(t, "Beta Clinic", entry.Name)
	assert.Equal(t, "https://example.org/b", entry.SourceURL)
	assert.Equal(t, "ngo", entry.OrganizationType)

	// Records without an organization type default to "facility".
	entry, ok = idx.Entry(2)
	require.True(t, ok)
	assert.Equal(t, "facility", entry.OrganizationType)

	_, ok = idx.Entry(99)
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store := fixtureStore(t)
	idx, err := Build(ctx, store, plannedEmbedder(t, store))
	require.NoError(t, err)

	t.Run("sorted by ascending distance", func(t *testing.T) {
		hits, err := idx.Search(ctx, "clinics near the origin", 4)
		require.NoError(t, err)
		require.Len(t, hits, 4)
		for i, hit := range hits {
			assert.Equal(t, i, hit.Row)
			if i > 0 {
				assert.GreaterOrEqual(t, hit.Distance, hits[i-1].Distance)
			}
		}
		// Squared L2 against the origin.
		assert.InDelta(t, 0, hits[0].Distance, 1e-6)
		assert.InDelta(t, 9, hits[3].Distance, 1e-6)
	})

	t.Run("k of zero", func(t *testing.T) {
		hits, err := idx.Search(ctx, "anything", 0)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("k clamped to corpus size", func(t *testing.T) {
		hits, err := idx.Search(ctx, "anything", 100)
		require.NoError(t, err)
		assert.Len(t, hits, 4)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := idx.Search(ctx, "repeat query", 3)
		require.NoError(t, err)
		second, err := idx.Search(ctx, "repeat query", 3)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty index returns no hits", func(t *testing.T) {
		empty, err := Build(ctx, writeStore(t, [][]string{{"name"}}), mock.NewMockEmbedder())
		require.NoError(t, err)
		hits, err := empty.Search(ctx, "anything", 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}
