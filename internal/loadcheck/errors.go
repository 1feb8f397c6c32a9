package loadcheck

import "errors"

var (
	// ErrUnhealthy is returned when the health endpoint does not answer 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrViolations is returned when at least one itinerary failed its checks.
	ErrViolations = errors.New("itinerary checks failed")
)
