package itinerary

import "errors"

// Sentinel kinds for itinerary errors.
var (
	ErrInvalidConcert = errors.New("invalid concert")
)
