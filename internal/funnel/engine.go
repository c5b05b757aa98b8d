package funnel

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/office-picker/internal/domain"
)

// ErrInvalidTransition is returned when an action is not allowed at the
// current stage, or names a node outside the current branch.
var ErrInvalidTransition = errors.New("invalid funnel transition")

// Stage is the funnel level currently shown to the user.
type Stage int

const (
	AtCountry Stage = iota
	AtState
	AtCity
	AtFacility
)

func (s Stage) String() string {
	switch s {
	case AtCountry:
		return "country"
	case AtState:
		return "state"
	case AtCity:
		return "city"
	case AtFacility:
		return "facility"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Cursor is the user's position in the funnel. State is set only when
// Country is set, and City only when State is set.
type Cursor struct {
	Country *domain.Country
	State   *domain.State
	City    *domain.City
}

// Valid reports whether the prefix property holds.
func (c Cursor) Valid() bool {
	if c.State != nil && c.Country == nil {
		return false
	}
	if c.City != nil && c.State == nil {
		return false
	}
	return true
}

// View is the filtered content of the current level. Exactly one of the
// slices matching Stage is populated. Empty distinguishes "nothing matched"
// from a level that has not been rendered yet.
type View struct {
	Stage      Stage
	Query      string
	Countries  []domain.Country
	States     []domain.State
	Cities     []domain.City
	Facilities []FacilityOption
	Empty      bool
}

// Engine walks a hierarchy one level at a time. It is not safe for
// concurrent use; it is driven by discrete user actions on a single goroutine.
type Engine struct {
	hierarchy domain.Hierarchy
	stage     Stage
	cursor    Cursor
	queries   [AtFacility + 1]string
}

// NewEngine creates an engine positioned at the country level.
func NewEngine(h domain.Hierarchy) *Engine {
	return &Engine{hierarchy: h}
}

func (e *Engine) Stage() Stage   { return e.stage }
func (e *Engine) Cursor() Cursor { return e.cursor }

// Query returns the search text entered at the given level.
func (e *Engine) Query(s Stage) string { return e.queries[s] }

// SetQuery replaces the search text of the current level.
func (e *Engine) SetQuery(q string) {
	e.queries[e.stage] = q
}

// ChooseCountry fixes the country and moves to the state level. Every
// deeper selection and all search text are cleared.
func (e *Engine) ChooseCountry(c domain.Country) error {
	if e.stage != AtCountry {
		return fmt.Errorf("choose country at %s: %w", e.stage, ErrInvalidTransition)
	}
	country, ok := findByID(e.hierarchy.Countries, c.ID, func(x domain.Country) string { return x.ID })
	if !ok {
		return fmt.Errorf("country %q not in hierarchy: %w", c.ID, ErrInvalidTransition)
	}
	e.cursor = Cursor{Country: country}
	e.queries = [AtFacility + 1]string{}
	e.stage = AtState
	return nil
}

// ChooseState fixes the state within the chosen country and moves to the
// city level.
func (e *Engine) ChooseState(s domain.State) error {
	if e.stage != AtState {
		return fmt.Errorf("choose state at %s: %w", e.stage, ErrInvalidTransition)
	}
	state, ok := findByID(e.cursor.Country.States, s.ID, func(x domain.State) string { return x.ID })
	if !ok {
		return fmt.Errorf("state %q not in country %q: %w", s.ID, e.cursor.Country.ID, ErrInvalidTransition)
	}
	e.cursor.State = state
	e.cursor.City = nil
	e.queries[AtCity] = ""
	e.queries[AtFacility] = ""
	e.stage = AtCity
	return nil
}

// ChooseCity fixes the city within the chosen state and moves to the
// facility level.
func (e *Engine) ChooseCity(c domain.City) error {
	if e.stage != AtCity {
		return fmt.Errorf("choose city at %s: %w", e.stage, ErrInvalidTransition)
	}
	city, ok := findByID(e.cursor.State.Cities, c.ID, func(x domain.City) string { return x.ID })
	if !ok {
		return fmt.Errorf("city %q not in state %q: %w", c.ID, e.cursor.State.ID, ErrInvalidTransition)
	}
	e.cursor.City = city
	e.queries[AtFacility] = ""
	e.stage = AtFacility
	return nil
}

// BackToCountry returns to the country level from any deeper level.
func (e *Engine) BackToCountry() error {
	if e.stage <= AtCountry {
		return fmt.Errorf("back to country at %s: %w", e.stage, ErrInvalidTransition)
	}
	e.cursor = Cursor{}
	e.stage = AtCountry
	return nil
}

// BackToState returns to the state level, keeping the chosen country.
func (e *Engine) BackToState() error {
	if e.stage <= AtState {
		return fmt.Errorf("back to state at %s: %w", e.stage, ErrInvalidTransition)
	}
	e.cursor.State = nil
	e.cursor.City = nil
	e.stage = AtState
	return nil
}

// BackToCity returns from the facility level to the city level.
func (e *Engine) BackToCity() error {
	if e.stage <= AtCity {
		return fmt.Errorf("back to city at %s: %w", e.stage, ErrInvalidTransition)
	}
	e.cursor.City = nil
	e.stage = AtCity
	return nil
}

// Back moves up exactly one level.
func (e *Engine) Back() error {
	switch e.stage {
	case AtState:
		return e.BackToCountry()
	case AtCity:
		return e.BackToState()
	case AtFacility:
		return e.BackToCity()
	default:
		return fmt.Errorf("back at %s: %w", e.stage, ErrInvalidTransition)
	}
}

// Reset discards the cursor and all search text.
func (e *Engine) Reset() {
	e.cursor = Cursor{}
	e.queries = [AtFacility + 1]string{}
	e.stage = AtCountry
}

// View filters the current level with its search text.
func (e *Engine) View() View {
	v := View{Stage: e.stage, Query: e.queries[e.stage]}
	switch e.stage {
	case AtCountry:
		v.Countries = FilterCountries(e.hierarchy, v.Query)
		v.Empty = len(v.Countries) == 0
	case AtState:
		v.States = FilterStates(*e.cursor.Country, v.Query)
		v.Empty = len(v.States) == 0
	case AtCity:
		v.Cities = FilterCities(*e.cursor.State, v.Query)
		v.Empty = len(v.Cities) == 0
	case AtFacility:
		v.Facilities = FilterFacilities(e.hierarchy.Facilities, *e.cursor.City, v.Query)
		v.Empty = len(v.Facilities) == 0
	}
	return v
}

// findByID returns a copy of the loaded node with the given ID. Only the ID of
// the caller's node is trusted; children always come from the hierarchy.
func findByID[T any](items []T, id string, idOf func(T) string) (*T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			found := items[i]
			return &found, true
		}
	}
	return nil, false
}
