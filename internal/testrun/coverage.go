package testrun

import (
	"fmt"
	"io"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/types"
	"golang.org/x/tools/cover"
)

// ParseCoverage reads a coverage profile as written by -coverprofile.
func ParseCoverage(r io.Reader) (types.Coverage, error) {
	profiles, err := cover.ParseProfilesFromReader(r)
	if err != nil {
		return types.Coverage{}, fmt.Errorf("%w: coverage profile: %w", ErrParse, err)
	}
	return Summarize(profiles), nil
}

// Summarize counts statements per file. A file's statement total is the
// sum of its blocks; covered statements are those in blocks with a
// non-zero count.
func Summarize(profiles []*cover.Profile) types.Coverage {
	cov := types.Coverage{Files: make(map[string]types.FileCoverage, len(profiles))}

	for _, p := range profiles {
		fc := cov.Files[p.FileName]
		for _, b := range p.Blocks {
			fc.LinesTotal += b.NumStmt
			if b.Count > 0 {
				fc.LinesCovered += b.NumStmt
			}
		}
		fc.LinesMissed = fc.LinesTotal - fc.LinesCovered
		fc.Percentage = percent(fc.LinesCovered, fc.LinesTotal)
		cov.Files[p.FileName] = fc
	}

	var total, covered int
	for _, fc := range cov.Files {
		total += fc.LinesTotal
		covered += fc.LinesCovered
	}

	cov.Total = percent(covered, total)
	return cov
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
