package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/funnel"
	"github.com/couchcryptid/office-picker/internal/selection"
)

const funnelHelp = `Enter a number to choose, /text to search, / to clear the search,
.. to go back, :country :state :city to jump, q to quit.
`

// commitFunc is selection.Committer.Commit.
type commitFunc func(ctx context.Context, f domain.Facility) (selection.Outcome, error)

// runFunnel drives the engine from terminal input until a facility is handed
// off or the user quits. It reports whether a handoff happened.
func runFunnel(ctx context.Context, term *terminal, engine *funnel.Engine, commit commitFunc) (bool, error) {
	term.printf("%s", funnelHelp)
	for {
		view := engine.View()
		input, err := term.ask(ctx, renderView(view, engine.Cursor()))
		if err != nil {
			return false, err
		}

		switch {
		case input == "q":
			return false, nil
		case input == "..":
			if err := engine.Back(); err != nil {
				term.printf("Already at the top level.\n")
			}
		case input == ":country":
			jump(term, engine.BackToCountry)
		case input == ":state":
			jump(term, engine.BackToState)
		case input == ":city":
			jump(term, engine.BackToCity)
		case strings.HasPrefix(input, "/"):
			engine.SetQuery(strings.TrimPrefix(input, "/"))
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 {
				term.printf("Unrecognized input %q.\n", input)
				continue
			}
			done, err := choose(ctx, term, engine, view, n-1, commit)
			if err != nil || done {
				return done, err
			}
		}
	}
}

func jump(term *terminal, to func() error) {
	if err := to(); err != nil {
		term.printf("Cannot go there from here.\n")
	}
}

// choose applies the n-th item of the current view.
func choose(ctx context.Context, term *terminal, engine *funnel.Engine, view funnel.View, n int, commit commitFunc) (bool, error) {
	switch {
	case view.Stage == funnel.AtCountry && n < len(view.Countries):
		return false, engine.ChooseCountry(view.Countries[n])
	case view.Stage == funnel.AtState && n < len(view.States):
		return false, engine.ChooseState(view.States[n])
	case view.Stage == funnel.AtCity && n < len(view.Cities):
		return false, engine.ChooseCity(view.Cities[n])
	case view.Stage == funnel.AtFacility && n < len(view.Facilities):
		opt := view.Facilities[n]
		outcome, err := commit(ctx, opt.Facility)
		if err != nil {
			return false, err
		}
		switch outcome {
		case selection.OutcomeHandedOff:
			engine.Reset()
			return true, nil
		case selection.OutcomeIgnored:
			term.printf("%s is not available.\n", opt.Name)
		}
		return false, nil
	}
	term.printf("No item %d.\n", n+1)
	return false, nil
}

func renderView(view funnel.View, cursor funnel.Cursor) string {
	var b strings.Builder

	b.WriteString("\n")
	if path := breadcrumb(cursor); path != "" {
		fmt.Fprintf(&b, "%s\n", path)
	}
	fmt.Fprintf(&b, "Choose a %s", view.Stage)
	if view.Query != "" {
		fmt.Fprintf(&b, " (search: %q)", view.Query)
	}
	b.WriteString(":\n")

	if view.Empty {
		if view.Stage == funnel.AtFacility && view.Query == "" {
			b.WriteString("  No offices in this city.\n")
		} else {
			b.WriteString("  No matches.\n")
		}
	}

	switch view.Stage {
	case funnel.AtCountry:
		for i, c := range view.Countries {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, c.Name)
		}
	case funnel.AtState:
		for i, s := range view.States {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s.Name)
		}
	case funnel.AtCity:
		for i, c := range view.Cities {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, c.Name)
		}
	case funnel.AtFacility:
		for i, f := range view.Facilities {
			fmt.Fprintf(&b, "  %d. %s", i+1, f.Name)
			if f.Type.Name != "" {
				fmt.Fprintf(&b, " [%s]", f.Type.Name)
			}
			if f.Status != "" {
				fmt.Fprintf(&b, " %s", f.Status)
			}
			if !f.Selectable {
				b.WriteString(" (inactive)")
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("> ")
	return b.String()
}

func breadcrumb(c funnel.Cursor) string {
	var parts []string
	if c.Country != nil {
		parts = append(parts, c.Country.Name)
	}
	if c.State != nil {
		parts = append(parts, c.State.Name)
	}
	if c.City != nil {
		parts = append(parts, c.City.Name)
	}
	return strings.Join(parts, " / ")
}
