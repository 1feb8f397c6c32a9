package itinerary

import "github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"

// NoConcertsMessage is carried by an empty result.
const NoConcertsMessage = "No concerts available"

// Kind discriminates a Result.
type Kind int

// Result kinds.
const (
	KindOK Kind = iota
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Result is either an ordered itinerary or the sentinel for empty input.
type Result struct {
	kind     Kind
	concerts []model.Concert
}

// OK wraps an itinerary.
func OK(concerts []model.Concert) Result {
	return Result{kind: KindOK, concerts: concerts}
}

// Empty is the result for an empty candidate pool.
func Empty() Result {
	return Result{kind: KindEmpty}
}

// Kind returns the discriminant.
func (r Result) Kind() Kind { return r.kind }

// IsEmpty reports whether the input held no concerts.
func (r Result) IsEmpty() bool { return r.kind == KindEmpty }

// Len returns the number of concerts in the itinerary.
func (r Result) Len() int { return len(r.concerts) }

// Concerts returns a copy of the itinerary; nil for an empty result.
func (r Result) Concerts() []model.Concert {
	if r.kind == KindEmpty {
		return nil
	}
	out := make([]model.Concert, len(r.concerts))
	copy(out, r.concerts)
	return out
}

// Message returns NoConcertsMessage for empty results and "" otherwise.
func (r Result) Message() string {
	if r.kind == KindEmpty {
		return NoConcertsMessage
	}
	return ""
}
