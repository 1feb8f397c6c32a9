// Package distance defines the separation metric used to break same-day ties.
package distance

import (
	"math"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
)

// Metric computes a scalar separation between two concert positions.
type Metric interface {
	Distance(a, b model.Concert) float64
}

// Euclidean is the planar norm of the raw coordinate difference.
// No geodesic correction is applied: a degree of longitude counts
// the same as a degree of latitude.
type Euclidean struct{}

// Distance implements Metric.
func (Euclidean) Distance(a, b model.Concert) float64 {
	dLat := a.Latitude - b.Latitude
	dLon := a.Longitude - b.Longitude
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Default is the metric used when none is configured.
var Default Metric = Euclidean{}

// Between returns the Euclidean distance between a and b.
func Between(a, b model.Concert) float64 {
	return Euclidean{}.Distance(a, b)
}
