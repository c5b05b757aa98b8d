package funnel

import (
	"testing"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCountries() []domain.Country {
	return []domain.Country{
		{ID: "de", Name: "Germany", States: []domain.State{
			{ID: "by", Name: "Bavaria", Cities: []domain.City{
				{ID: "muc", Name: "München"},
				{ID: "nue", Name: "Nürnberg"},
			}},
			{ID: "be", Name: "Berlin"},
		}},
		{ID: "ge", Name: "Georgia"},
		{ID: "ng", Name: "Nigeria"},
		{ID: "am", Name: "Armenia"},
	}
}

func TestFilterCountries(t *testing.T) {
	h := domain.Hierarchy{Countries: testCountries()}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps order", "", []string{"de", "ge", "ng", "am"}},
		{"case insensitive", "GER", []string{"de", "ng"}},
		{"substring in middle", "eni", []string{"am"}},
		{"preserves relative order", "ia", []string{"ge", "ng", "am"}},
		{"no match", "zz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCountries(h, tt.query)
			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterCountries_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	h := domain.Hierarchy{Countries: testCountries()}
	assert.Equal(t, h.Countries, FilterCountries(h, ""))
}

func TestFilterCountries_ResultDoesNotAliasHierarchy(t *testing.T) {
	h := domain.Hierarchy{Countries: testCountries()}

	got := FilterCountries(h, "")
	got[0] = domain.Country{ID: "xx", Name: "Mutated"}

	assert.Equal(t, "de", h.Countries[0].ID)
}

func TestFilterStates(t *testing.T) {
	germany := testCountries()[0]

	got := FilterStates(germany, "bav")
	require.Len(t, got, 1)
	assert.Equal(t, "by", got[0].ID)

	assert.Len(t, FilterStates(germany, ""), 2)
}

func TestFilterCities_UnicodeFolding(t *testing.T) {
	bavaria := testCountries()[0].States[0]

	got := FilterCities(bavaria, "MÜN")
	require.Len(t, got, 1)
	assert.Equal(t, "muc", got[0].ID)
}

func TestFilterFacilities(t *testing.T) {
	city := domain.City{ID: "muc", Name: "München"}
	facilities := []domain.Facility{
		{ID: "f1", Name: "Central Depot", CityID: "muc", IsActive: true},
		{ID: "f2", Name: "North Depot", CityID: "muc", IsActive: false},
		{ID: "f3", Name: "Central Depot", CityID: "nue", IsActive: true},
		{ID: "f4", Name: "Front Desk", CityID: "muc", IsActive: true},
	}

	t.Run("scoped to city", func(t *testing.T) {
		got := FilterFacilities(facilities, city, "")
		require.Len(t, got, 3)
		assert.Equal(t, "f1", got[0].ID)
		assert.Equal(t, "f2", got[1].ID)
		assert.Equal(t, "f4", got[2].ID)
	})

	t.Run("inactive facilities are listed but not selectable", func(t *testing.T) {
		got := FilterFacilities(facilities, city, "north")
		require.Len(t, got, 1)
		assert.Equal(t, "f2", got[0].ID)
		assert.False(t, got[0].Selectable)
	})

	t.Run("active facilities are selectable", func(t *testing.T) {
		got := FilterFacilities(facilities, city, "depot")
		require.Len(t, got, 2)
		assert.True(t, got[0].Selectable)
	})

	t.Run("no facilities in city", func(t *testing.T) {
		got := FilterFacilities(facilities, domain.City{ID: "ber"}, "")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
