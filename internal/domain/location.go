package domain

// City is the leaf of the location hierarchy. Facilities reference it by ID.
type City struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// State is a first-level administrative division (state, province, region).
type State struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Cities []City `json:"cities" yaml:"cities"`
}

// Country is the root of the location hierarchy.
type Country struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	States []State `json:"states" yaml:"states"`
}

// FacilityType is the descriptive label shown next to a facility, e.g. "warehouse".
type FacilityType struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Facility is a selectable office. Inactive facilities are listed but cannot be chosen.
type Facility struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Type     FacilityType `json:"type" yaml:"type"`
	Status   string       `json:"status" yaml:"status"`
	IsActive bool         `json:"isActive" yaml:"isActive"`
	CityID   string       `json:"cityId" yaml:"cityId"`
}

// Hierarchy is the session's read-only snapshot of locations and facilities.
type Hierarchy struct {
	Countries  []Country
	Facilities []Facility

	// FacilityErr records a non-fatal facility load failure. Facilities is
	// empty when it is set.
	FacilityErr error
}

// HasCity reports whether a city with the given ID exists anywhere in the tree.
func (h Hierarchy) HasCity(id string) bool {
	for _, country := range h.Countries {
		for _, state := range country.States {
			for _, city := range state.Cities {
				if city.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// Facility looks up a facility by ID.
func (h Hierarchy) Facility(id string) (Facility, bool) {
	for _, f := range h.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return Facility{}, false
}
