package constraints_test

import (
	"math/rand"
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/constraints"
)

func TestAll(t *testing.T) {
	Convey("Given the requirement list", t, func() {
		all := constraints.All()

		Convey("Then there are six requirements", func() {
			So(len(all), ShouldEqual, 6)
			So(all[0], ShouldStartWith, "The itinerary should return a list of concerts that state")
			So(constraints.Text(5), ShouldStartWith, "If an artist only has one concert")
			So(constraints.Text(-1), ShouldEqual, "")
			So(constraints.Text(6), ShouldEqual, "")
		})

		Convey("Then callers get a copy", func() {
			all[0] = "changed"
			So(constraints.All()[0], ShouldNotEqual, "changed")
		})
	})
}

func TestAssign(t *testing.T) {
	Convey("Given a seeded source", t, func() {
		Convey("When assigning with the default split", func() {
			a := constraints.Assign(rand.New(rand.NewSource(42)), constraints.DefaultManual)

			Convey("Then the indices are partitioned three and three", func() {
				So(len(a.Manual), ShouldEqual, 3)
				So(len(a.AI), ShouldEqual, 3)
				So(a.Valid(), ShouldBeTrue)

				joined := append(append([]int{}, a.Manual...), a.AI...)
				sort.Ints(joined)
				So(joined, ShouldResemble, []int{0, 1, 2, 3, 4, 5})
			})

			Convey("Then the same seed gives the same assignment", func() {
				b := constraints.Assign(rand.New(rand.NewSource(42)), constraints.DefaultManual)
				So(b, ShouldResemble, a)
			})

			Convey("Then texts match indices", func() {
				So(a.ManualText()[0], ShouldEqual, constraints.Text(a.Manual[0]))
				So(len(a.AIText()), ShouldEqual, 3)
			})
		})

		Convey("When the manual count is out of range", func() {
			rng := rand.New(rand.NewSource(1))

			Convey("Then it is clamped", func() {
				So(len(constraints.Assign(rng, 10).Manual), ShouldEqual, 6)
				So(len(constraints.Assign(rng, -2).Manual), ShouldEqual, 0)
			})
		})
	})

	Convey("Given hand-written assignments", t, func() {
		So(constraints.Assignment{Manual: []int{0, 1, 2}, AI: []int{3, 4, 5}}.Valid(), ShouldBeTrue)
		So(constraints.Assignment{Manual: []int{0, 0, 2}, AI: []int{3, 4, 5}}.Valid(), ShouldBeFalse)
		So(constraints.Assignment{Manual: []int{0, 1}, AI: []int{9}}.Valid(), ShouldBeFalse)
		So(constraints.Assignment{}.Valid(), ShouldBeFalse)
	})
}
