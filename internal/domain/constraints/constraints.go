// Package constraints holds the itinerary requirements and splits them
// between manually written and AI-assisted test work.
package constraints

import "math/rand"

// DefaultManual is how many requirements go to manual work by default.
const DefaultManual = 3

var all = []string{
	"The itinerary should return a list of concerts that state the artist, date, and location of each concert.",
	"The itinerary should return a list of concerts sorted in chronological order (by date from earliest to latest).",
	"An artist has at most one concert in the itinerary. If an artist has more than one concert in the list, the itinerary should only include the one with the earliest start date.",
	"Some artists may have no concerts on the list. In that case, that should be indicated in the itinerary.",
	"No two concerts may take place on the same day. If two different artists (or the same artist) have a concert on the same day, the itinerary only includes the concert closest to the last one.",
	"If an artist only has one concert, it should be prioritized over artists with multiple concerts, regardless if the location is closer or not.",
}

// All returns the requirement texts in their canonical order.
func All() []string {
	out := make([]string, len(all))
	copy(out, all)
	return out
}

// Text returns the requirement at index i, or "" when out of range.
func Text(i int) string {
	if i < 0 || i >= len(all) {
		return ""
	}
	return all[i]
}

// Assignment lists requirement indices per working mode.
type Assignment struct {
	Manual []int `json:"manual"`
	AI     []int `json:"ai_assisted"`
}

// Assign shuffles the requirement indices with rng and gives the first
// manual of them to manual work, the rest to AI-assisted work. manual is
// clamped to [0, len(All())].
func Assign(rng *rand.Rand, manual int) Assignment {
	indices := make([]int, len(all))
	for i := range indices {
		indices[i] = i
	}
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	manual = max(0, min(manual, len(indices)))
	return Assignment{
		Manual: append([]int{}, indices[:manual]...),
		AI:     append([]int{}, indices[manual:]...),
	}
}

// Valid reports whether a is a partition of all requirement indices.
func (a Assignment) Valid() bool {
	seen := make(map[int]bool, len(all))
	for _, i := range append(append([]int{}, a.Manual...), a.AI...) {
		if i < 0 || i >= len(all) || seen[i] {
			return false
		}
		seen[i] = true
	}
	return len(seen) == len(all)
}

// ManualText returns the manual requirement texts in assignment order.
func (a Assignment) ManualText() []string { return texts(a.Manual) }

// AIText returns the AI-assisted requirement texts in assignment order.
func (a Assignment) AIText() []string { return texts(a.AI) }

func texts(indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, i := range indices {
		if t := Text(i); t != "" {
			out = append(out, t)
		}
	}
	return out
}
