package itinerary

import (
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/dedupe"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/distance"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
)

// Rule names the branch that settled a same-day conflict.
type Rule string

const (
	// RuleLookahead applies while only one concert has been accepted: the
	// challenger wins only if it shares coordinates with the next concert
	// after the conflicting day.
	RuleLookahead Rule = "lookahead"
	// RuleAnchor applies once two or more concerts have been accepted: the
	// challenger wins only if it is strictly closer to the second-to-last
	// accepted concert.
	RuleAnchor Rule = "anchor"
)

// Conflict records one same-day decision made by Resolve.
type Conflict struct {
	Rule       Rule
	Incumbent  model.Concert
	Challenger model.Concert
	Replaced   bool
}

// Stats summarizes the conflicts met while resolving.
type Stats struct {
	Conflicts []Conflict
}

// Replacements returns how many conflicts displaced the incumbent.
func (s Stats) Replacements() int {
	n := 0
	for _, c := range s.Conflicts {
		if c.Replaced {
			n++
		}
	}
	return n
}

// Resolve walks the selection in date order and returns an itinerary with at
// most one concert per day, using the Euclidean metric for tie-breaks.
func Resolve(sel dedupe.Selection) ([]model.Concert, Stats) {
	return resolve(sel, distance.Default)
}

func resolve(sel dedupe.Selection, metric distance.Metric) ([]model.Concert, Stats) {
	sorted := model.SortedByDate(sel.Concerts())
	out := make([]model.Concert, 0, len(sorted))
	var stats Stats

	for _, current := range sorted {
		if len(out) == 0 || !out[len(out)-1].SameDay(current) {
			out = append(out, current)
			continue
		}

		last := len(out) - 1
		conflict := Conflict{Incumbent: out[last], Challenger: current}

		if len(out) == 1 {
			conflict.Rule = RuleLookahead
			next, ok := nextAfter(sorted, current)
			conflict.Replaced = ok && next.SamePlace(current)
		} else {
			conflict.Rule = RuleAnchor
			anchor := out[last-1]
			conflict.Replaced = metric.Distance(current, anchor) < metric.Distance(out[last], anchor)
		}

		if conflict.Replaced {
			out[last] = current
		}
		stats.Conflicts = append(stats.Conflicts, conflict)
	}

	return out, stats
}

// nextAfter returns the first concert in sorted strictly after c's day.
func nextAfter(sorted []model.Concert, c model.Concert) (model.Concert, bool) {
	for _, candidate := range sorted {
		if c.Before(candidate) {
			return candidate, true
		}
	}
	return model.Concert{}, false
}
