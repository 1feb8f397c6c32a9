package itinerary

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
)

// Coordinate bounds accepted by Validate.
const (
	maxLatitude  = 90
	maxLongitude = 180
)

// Validate checks concerts for a blank artist, a date that is not
// YYYY-MM-DD, and non-finite or out-of-range coordinates. Build never calls
// it; adapters that accept external input do. All problems are reported,
// each wrapping ErrInvalidConcert.
func Validate(concerts []model.Concert) error {
	var errs []error
	for i, c := range concerts {
		if strings.TrimSpace(c.Artist) == "" {
			errs = append(errs, fmt.Errorf("concert %d: %w: missing artist", i, ErrInvalidConcert))
		}
		if _, err := time.Parse(model.DateLayout, c.Date); err != nil {
			errs = append(errs, fmt.Errorf("concert %d: %w: date %q is not YYYY-MM-DD", i, ErrInvalidConcert, c.Date))
		}
		if !finiteWithin(c.Latitude, maxLatitude) {
			errs = append(errs, fmt.Errorf("concert %d: %w: latitude %v out of range", i, ErrInvalidConcert, c.Latitude))
		}
		if !finiteWithin(c.Longitude, maxLongitude) {
			errs = append(errs, fmt.Errorf("concert %d: %w: longitude %v out of range", i, ErrInvalidConcert, c.Longitude))
		}
	}
	return errors.Join(errs...)
}

func finiteWithin(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) <= limit
}
