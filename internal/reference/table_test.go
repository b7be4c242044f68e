package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejal-1604/MGNREGA/internal/domain"
)

func TestNewTable(t *testing.T) {
	table := NewTable()

	assert.Equal(t, 51, table.Len())

	seen := make(map[string]bool)
	for _, r := range table.All() {
		assert.False(t, seen[r.ID], "duplicate region id %s", r.ID)
		seen[r.ID] = true
		assert.Equal(t, StateCode, r.StateCode)
		assert.Equal(t, StateName, r.StateName)
		assert.Equal(t, domain.SourceReference, r.DataSource)
		assert.NotZero(t, r.Lat)
		assert.NotZero(t, r.Lon)
	}
}

func TestTable_ByCode(t *testing.T) {
	table := NewTable()

	r, ok := table.ByCode("1711")
	require.True(t, ok)
	assert.Equal(t, "Damoh", r.Name)
	assert.Equal(t, "दमोह", r.HindiName)
	assert.Equal(t, "17_1711", r.ID)

	_, ok = table.ByCode("9999")
	assert.False(t, ok)
}

func TestTable_Search(t *testing.T) {
	table := NewTable()

	t.Run("matches canonical name case-insensitively", func(t *testing.T) {
		results := table.Search("dam", 0)
		require.NotEmpty(t, results)
		assert.Equal(t, "Damoh", results[0].Name)
	})

	t.Run("matches Hindi name", func(t *testing.T) {
		results := table.Search("दमोह", 0)
		require.Len(t, results, 1)
		assert.Equal(t, "Damoh", results[0].Name)
	})

	t.Run("single character returns first N unfiltered", func(t *testing.T) {
		results := table.Search("d", 10)
		require.Len(t, results, 10)
		// Table order, not a "d"-filtered set.
		assert.Equal(t, "Sheopur", results[0].Name)
	})

	t.Run("empty query returns everything up to the limit", func(t *testing.T) {
		assert.Len(t, table.Search("", 0), 51)
		assert.Len(t, table.Search("", 5), 5)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		assert.Empty(t, table.Search("zzzz", 0))
	})

	t.Run("state name matches every district", func(t *testing.T) {
		assert.Len(t, table.Search("madhya", 0), 51)
	})
}

func TestTable_Nearest(t *testing.T) {
	table := NewTable()

	t.Run("exact coordinate match has zero distance", func(t *testing.T) {
		damoh, ok := table.ByCode("1711")
		require.True(t, ok)

		r, dist, ok := table.Nearest(damoh.Lat, damoh.Lon)
		require.True(t, ok)
		assert.Equal(t, "Damoh", r.Name)
		assert.InDelta(t, 0, dist, 1e-9)
	})

	t.Run("bhopal city resolves to bhopal district", func(t *testing.T) {
		r, dist, ok := table.Nearest(23.25, 77.41)
		require.True(t, ok)
		assert.Equal(t, "Bhopal", r.Name)
		assert.Less(t, dist, 5.0)
	})

	t.Run("coordinates outside the state still match something", func(t *testing.T) {
		// New Delhi; the nearest MP district is a long way off but the
		// matcher always answers when the table is non-empty.
		_, dist, ok := table.Nearest(28.6139, 77.2090)
		require.True(t, ok)
		assert.Greater(t, dist, 100.0)
	})

	t.Run("empty table reports no match", func(t *testing.T) {
		empty := &Table{}
		_, _, ok := empty.Nearest(23.0, 77.0)
		assert.False(t, ok)
	})
}

func TestHaversineKm(t *testing.T) {
	// Bhopal to Indore is roughly 170 km by great circle.
	d := haversineKm(23.2599, 77.4126, 22.7196, 75.8577)
	assert.InDelta(t, 170, d, 15)

	assert.Zero(t, haversineKm(23.0, 77.0, 23.0, 77.0))
}
