package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/dataset"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/itinerary"
)

func TestSample(t *testing.T) {
	Convey("Given the sample dataset", t, func() {
		concerts := dataset.Sample()

		Convey("Then it holds the full pool", func() {
			So(len(concerts), ShouldEqual, 26)
			So(concerts[0].Artist, ShouldEqual, "Taylor Swift")
			So(concerts[len(concerts)-1].Location, ShouldEqual, "Amsterdam")
		})

		Convey("Then every call returns an independent copy", func() {
			concerts[0].Artist = "changed"
			So(dataset.Sample()[0].Artist, ShouldEqual, "Taylor Swift")
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given a YAML list", t, func() {
		data := []byte(`
- artist: Adele
  date: 2025-06-15
  location: Oslo
  latitude: 59.9139
  longitude: 10.7522
- artist: Drake
  date: "2025-09-10"
  location: Stockholm
  latitude: 59.3293
  longitude: 18.0686
`)
		concerts, err := dataset.Decode(data)

		Convey("Then concerts are decoded with dates as plain strings", func() {
			So(err, ShouldBeNil)
			So(len(concerts), ShouldEqual, 2)
			So(concerts[0].Date, ShouldEqual, "2025-06-15")
			So(concerts[1].Longitude, ShouldEqual, 18.0686)
		})
	})

	Convey("Given a JSON document with a concerts key", t, func() {
		data := []byte(`{"concerts":[{"artist":"BTS","date":"2025-07-01","location":"Copenhagen","latitude":55.6761,"longitude":12.5683}]}`)
		concerts, err := dataset.Decode(data)

		Convey("Then it is decoded", func() {
			So(err, ShouldBeNil)
			So(concerts[0].Artist, ShouldEqual, "BTS")
		})
	})

	Convey("Given an empty document", t, func() {
		_, err := dataset.Decode([]byte(""))
		So(errors.Is(err, dataset.ErrEmptyDataset), ShouldBeTrue)
	})

	Convey("Given malformed input", t, func() {
		_, err := dataset.Decode([]byte("concerts: [ {"))
		So(errors.Is(err, dataset.ErrDecode), ShouldBeTrue)
	})

	Convey("Given a concert with a bad date", t, func() {
		_, err := dataset.Decode([]byte(`[{"artist":"X","date":"tomorrow"}]`))
		So(errors.Is(err, itinerary.ErrInvalidConcert), ShouldBeTrue)
	})
}

func TestSources(t *testing.T) {
	Convey("Given a dataset file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "concerts.yaml")
		So(os.WriteFile(path, []byte("- {artist: Metallica, date: 2025-08-01, location: Berlin, latitude: 52.52, longitude: 13.405}\n"), 0o600), ShouldBeNil)

		Convey("When loading through NewSource", func() {
			concerts, err := dataset.NewSource(path).Concerts(context.Background())

			Convey("Then the file is used", func() {
				So(err, ShouldBeNil)
				So(len(concerts), ShouldEqual, 1)
				So(concerts[0].Location, ShouldEqual, "Berlin")
			})
		})

		Convey("When the file is missing", func() {
			_, err := dataset.LoadFile(filepath.Join(dir, "missing.yaml"))

			Convey("Then the os error is wrapped", func() {
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})
	})

	Convey("Given no dataset path", t, func() {
		concerts, err := dataset.NewSource("").Concerts(context.Background())

		Convey("Then the sample is used", func() {
			So(err, ShouldBeNil)
			So(len(concerts), ShouldEqual, 26)
		})
	})
}
