// Package dedupe reduces a candidate pool to one concert per artist.
package dedupe

import (
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
)

// Selection maps each artist to a single representative concert.
// Iteration order is the order in which artists were first recorded,
// which for SelectEarliest is date order.
type Selection struct {
	order    []string
	byArtist map[string]model.Concert
}

// SelectEarliest keeps the chronologically earliest concert of every artist.
// Exact-date ties between two concerts of the same artist go to the one that
// appears first in the input.
func SelectEarliest(concerts []model.Concert) Selection {
	s := newSelection(len(concerts))
	for _, c := range model.SortedByDate(concerts) {
		s.seenAndRecord(c)
	}
	return s
}

func newSelection(capacity int) Selection {
	return Selection{
		order:    make([]string, 0, capacity),
		byArtist: make(map[string]model.Concert, capacity),
	}
}

// seenAndRecord records c unless its artist is already present.
// Returns true if the artist was already seen.
func (s *Selection) seenAndRecord(c model.Concert) bool {
	if _, exists := s.byArtist[c.Artist]; exists {
		return true
	}
	s.byArtist[c.Artist] = c
	s.order = append(s.order, c.Artist)
	return false
}

// Len returns the number of distinct artists.
func (s Selection) Len() int {
	return len(s.order)
}

// Get returns the concert selected for artist.
func (s Selection) Get(artist string) (model.Concert, bool) {
	c, ok := s.byArtist[artist]
	return c, ok
}

// Artists returns the recorded artists in first-seen order.
func (s Selection) Artists() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Concerts returns the selected concerts in first-seen order.
func (s Selection) Concerts() []model.Concert {
	out := make([]model.Concert, 0, len(s.order))
	for _, artist := range s.order {
		out = append(out, s.byArtist[artist])
	}
	return out
}
