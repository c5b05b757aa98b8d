package hierarchy

import (
	"fmt"

	"github.com/couchcryptid/office-picker/internal/domain"
)

// Issue is a data integrity problem found in a loaded hierarchy. Issues never
// block selection; they are reported by the validate command.
type Issue struct {
	Kind   string
	ID     string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Kind, i.ID, i.Detail)
}

// Validate checks ID uniqueness across each level and that every facility
// references a city present in the tree.
func Validate(h domain.Hierarchy) []Issue {
	var issues []Issue
	seen := map[string]map[string]bool{"country": {}, "state": {}, "city": {}, "facility": {}}

	mark := func(kind, id, name string) {
		switch {
		case id == "":
			issues = append(issues, Issue{Kind: kind, ID: "(empty)", Detail: fmt.Sprintf("%q has no id", name)})
		case seen[kind][id]:
			issues = append(issues, Issue{Kind: kind, ID: id, Detail: "duplicate id"})
		default:
			seen[kind][id] = true
		}
	}

	for _, country := range h.Countries {
		mark("country", country.ID, country.Name)
		for _, state := range country.States {
			mark("state", state.ID, state.Name)
			for _, city := range state.Cities {
				mark("city", city.ID, city.Name)
			}
		}
	}

	for _, f := range h.Facilities {
		mark("facility", f.ID, f.Name)
		if f.CityID == "" {
			continue
		}
		if !h.HasCity(f.CityID) {
			issues = append(issues, Issue{Kind: "facility", ID: f.ID, Detail: fmt.Sprintf("city %q not in hierarchy", f.CityID)})
		}
	}

	return issues
}
