package funnel

import (
	"slices"
	"strings"

	"github.com/couchcryptid/office-picker/internal/domain"
	"golang.org/x/text/cases"
)

// FacilityOption is a facility as listed at the last funnel level.
// Inactive facilities stay visible with Selectable set to false.
type FacilityOption struct {
	domain.Facility
	Selectable bool
}

// FilterCountries returns the countries whose name contains query,
// ignoring case. An empty query returns every country in its original order.
// Results are always fresh slices; the hierarchy is never shared.
func FilterCountries(h domain.Hierarchy, query string) []domain.Country {
	return filterByName(h.Countries, query, func(c domain.Country) string { return c.Name })
}

// FilterStates applies the same rule to the states of country.
func FilterStates(country domain.Country, query string) []domain.State {
	return filterByName(country.States, query, func(s domain.State) string { return s.Name })
}

// FilterCities applies the same rule to the cities of state.
func FilterCities(state domain.State, query string) []domain.City {
	return filterByName(state.Cities, query, func(c domain.City) string { return c.Name })
}

// FilterFacilities returns the facilities located in city whose name matches
// query. Inactive facilities are included and tagged as not selectable.
func FilterFacilities(facilities []domain.Facility, city domain.City, query string) []FacilityOption {
	needle := fold(query)
	out := make([]FacilityOption, 0)
	for _, f := range facilities {
		if f.CityID != city.ID {
			continue
		}
		if needle != "" && !strings.Contains(fold(f.Name), needle) {
			continue
		}
		out = append(out, FacilityOption{Facility: f, Selectable: f.IsActive})
	}
	return out
}

func filterByName[T any](items []T, query string, name func(T) string) []T {
	if query == "" {
		return slices.Clone(items)
	}
	needle := fold(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(fold(name(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}

// fold applies Unicode case folding so "STRASSE" matches "straße" the way a
// user expects. A Caser is stateful, so one is built per call.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}
