package loadcheck

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"
	"github.com/victorezeilo/TDD-Prompt-Engineering/pkg/logger"
)

type city struct {
	name     string
	lat, lon float64
}

var cities = []city{
	{"Stockholm", 59.3293, 18.0686},
	{"Oslo", 59.9139, 10.7522},
	{"Copenhagen", 55.6761, 12.5683},
	{"Helsinki", 60.1699, 24.9384},
	{"Gothenburg", 57.7089, 11.9746},
	{"Malmö", 55.6050, 13.0038},
	{"Bergen", 60.3913, 5.3221},
	{"Aarhus", 56.1629, 10.2039},
}

// Dates fall inside a short window so same-day conflicts are common.
const windowDays = 30

var windowStart = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

// generateDatasets builds cfg.Requests random concert lists from a
// seeded source so a failing run can be replayed.
func generateDatasets(ctx context.Context, cfg *Config, stats *Stats) ([]Dataset, error) {
	logger.Get().Info(ctx, "generating datasets",
		logger.Int("datasets", cfg.Requests),
		logger.Int("concerts", cfg.Concerts),
		logger.Int("artists", cfg.Artists))

	rng := rand.New(rand.NewSource(cfg.Seed))
	out := make([]Dataset, 0, cfg.Requests)
	for i := 0; i < cfg.Requests; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, Dataset{Index: i, Concerts: generateConcerts(rng, cfg.Concerts, cfg.Artists)})
	}

	stats.DatasetsGenerated = len(out)
	return out, nil
}

func generateConcerts(rng *rand.Rand, n, artists int) []model.Concert {
	out := make([]model.Concert, n)
	for i := range out {
		c := cities[rng.Intn(len(cities))]
		out[i] = model.Concert{
			Artist:    fmt.Sprintf("Artist %02d", rng.Intn(artists)+1),
			Date:      windowStart.AddDate(0, 0, rng.Intn(windowDays)).Format(model.DateLayout),
			Location:  c.name,
			Latitude:  c.lat,
			Longitude: c.lon,
		}
	}
	return out
}
