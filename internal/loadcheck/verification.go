package loadcheck

import (
	"fmt"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
)

// verifyItinerary checks a response against the itinerary rules and
// against a local build of the same input.
func verifyItinerary(input []model.Concert, got ItineraryResponse) error {
	if err := verifyShape(input, got.Itinerary); err != nil {
		return err
	}

	want := itinerary.Build(input)
	if want.IsEmpty() {
		if len(got.Itinerary) != 0 || got.Message != want.Message() {
			return fmt.Errorf("expected empty itinerary with message %q", want.Message())
		}
		return nil
	}

	expected := types.Stops(want.Concerts())
	if len(expected) != len(got.Itinerary) {
		return fmt.Errorf("itinerary has %d stops, local build has %d", len(got.Itinerary), len(expected))
	}
	for i := range expected {
		if expected[i] != got.Itinerary[i] {
			return fmt.Errorf("stop %d is %s on %s, local build has %s on %s",
				i+1, got.Itinerary[i].Artist, got.Itinerary[i].Date, expected[i].Artist, expected[i].Date)
		}
	}
	return nil
}

// verifyShape checks the rules every itinerary satisfies regardless of
// how conflicts were resolved.
func verifyShape(input []model.Concert, stops []types.Stop) error {
	known := make(map[model.Concert]bool, len(input))
	for _, c := range input {
		known[c] = true
	}

	artists := make(map[string]bool, len(stops))
	for i, s := range stops {
		if s.Position != i+1 {
			return fmt.Errorf("stop %d has position %d", i+1, s.Position)
		}
		if i > 0 && s.Date <= stops[i-1].Date {
			return fmt.Errorf("stop %d on %s is not after %s", i+1, s.Date, stops[i-1].Date)
		}
		if artists[s.Artist] {
			return fmt.Errorf("artist %s appears more than once", s.Artist)
		}
		artists[s.Artist] = true

		c := model.Concert{Artist: s.Artist, Date: s.Date, Location: s.Location, Latitude: s.Latitude, Longitude: s.Longitude}
		if !known[c] {
			return fmt.Errorf("stop %d (%s on %s) is not in the input", i+1, s.Artist, s.Date)
		}
	}
	return nil
}
