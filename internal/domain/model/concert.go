// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"slices"
	"strings"
)

// DateLayout is the calendar-day format used by Concert.Date.
const DateLayout = "2006-01-02"

// Concert represents one candidate performance.
// Date is an ISO calendar day (YYYY-MM-DD); string order is date order.
type Concert struct {
	Artist    string  `json:"artist" yaml:"artist"`
	Date      string  `json:"date" yaml:"date"`
	Location  string  `json:"location" yaml:"location"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// SameDay reports whether both concerts fall on the same calendar day.
func (c Concert) SameDay(o Concert) bool {
	return c.Date == o.Date
}

// Before reports whether c is on a strictly earlier day than o.
func (c Concert) Before(o Concert) bool {
	return c.Date < o.Date
}

// SamePlace reports whether both concerts share exactly the same coordinates.
func (c Concert) SamePlace(o Concert) bool {
	return c.Latitude == o.Latitude && c.Longitude == o.Longitude
}

func (c Concert) String() string {
	return fmt.Sprintf("%s %s @ %s", c.Date, c.Artist, c.Location)
}

// SortedByDate returns a copy of concerts ordered by date ascending.
// The sort is stable: concerts on the same day keep their input order.
func SortedByDate(concerts []Concert) []Concert {
	out := slices.Clone(concerts)
	slices.SortStableFunc(out, func(a, b Concert) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}
