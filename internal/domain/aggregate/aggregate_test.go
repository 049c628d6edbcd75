package aggregate_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	aggregate "github.com/okian/tally/internal/domain/aggregate"
	model "github.com/okian/tally/internal/domain/model"
	"github.com/okian/tally/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// mockLoader serves months from a map and fails for anything else.
type mockLoader struct {
	months map[string]model.Month
	calls  []string
}

func (m *mockLoader) Month(_ context.Context, id string) (model.Month, error) {
	m.calls = append(m.calls, id)
	month, ok := m.months[id]
	if !ok {
		return model.Month{}, fmt.Errorf("month %s: %w", id, errors.New("resource missing"))
	}
	return month, nil
}

func TestAggregatorTotals(t *testing.T) {
	_ = logger.Init()
	ctx := context.Background()

	Convey("Given two months of submissions", t, func() {
		loader := &mockLoader{months: map[string]model.Month{
			"1": {Submissions: []model.Submission{
				{TeamName: "A", Score: 10},
			}},
			"2": {Submissions: []model.Submission{
				{TeamName: "A", Score: 5},
				{TeamName: "B", Score: 7},
			}},
		}}
		agg := aggregate.New(loader)

		Convey("When aggregating both months", func() {
			totals, failures := agg.Totals(ctx, []string{"1", "2"})

			Convey("Then totals should sum scores across months", func() {
				So(failures, ShouldBeEmpty)
				So(totals, ShouldHaveLength, 2)
				So(totals["A"], ShouldEqual, 15)
				So(totals["B"], ShouldEqual, 7)
			})

			Convey("And months should be loaded in input order", func() {
				So(loader.calls, ShouldResemble, []string{"1", "2"})
			})
		})

		Convey("When one month fails to load", func() {
			totals, failures := agg.Totals(ctx, []string{"1", "missing"})

			Convey("Then the result equals the aggregation over succeeding months", func() {
				So(totals, ShouldHaveLength, 1)
				So(totals["A"], ShouldEqual, 10)
			})

			Convey("And the failure should be recorded, not raised", func() {
				So(failures, ShouldHaveLength, 1)
				So(failures[0].MonthID, ShouldEqual, "missing")
				So(failures[0].Err, ShouldNotBeNil)
			})
		})

		Convey("When every month fails to load", func() {
			totals, failures := agg.Totals(ctx, []string{"x", "y"})

			Convey("Then totals should be empty and all failures recorded", func() {
				So(totals, ShouldBeEmpty)
				So(totals, ShouldNotBeNil)
				So(failures, ShouldHaveLength, 2)
			})
		})

		Convey("When aggregating an empty month list", func() {
			totals, failures := agg.Totals(ctx, nil)

			Convey("Then the result should be an empty mapping", func() {
				So(totals, ShouldBeEmpty)
				So(totals, ShouldNotBeNil)
				So(failures, ShouldBeEmpty)
			})
		})

		Convey("When aggregating twice with unchanged backing data", func() {
			first, _ := agg.Totals(ctx, []string{"1", "2"})
			second, _ := agg.Totals(ctx, []string{"1", "2"})

			Convey("Then the totals should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given a month with duplicate team entries", t, func() {
		loader := &mockLoader{months: map[string]model.Month{
			"1": {Submissions: []model.Submission{
				{TeamName: "A", Score: 3},
				{TeamName: "A", Score: 4},
			}},
		}}
		agg := aggregate.New(loader)

		Convey("When aggregating", func() {
			totals, failures := agg.Totals(ctx, []string{"1"})

			Convey("Then duplicates should accumulate", func() {
				So(failures, ShouldBeEmpty)
				So(totals["A"], ShouldEqual, 7)
			})
		})
	})

	Convey("Given a month with an empty submission list", t, func() {
		loader := &mockLoader{months: map[string]model.Month{
			"1": {Submissions: nil},
		}}
		agg := aggregate.New(loader)

		Convey("When aggregating", func() {
			totals, failures := agg.Totals(ctx, []string{"1"})

			Convey("Then no team should appear in the result", func() {
				So(failures, ShouldBeEmpty)
				So(totals, ShouldBeEmpty)
			})
		})
	})
}

func TestRanked(t *testing.T) {
	Convey("Given a totals map", t, func() {
		totals := map[string]float64{
			"A": 15,
			"B": 7,
			"C": 15,
			"D": 2,
		}

		Convey("When ranking", func() {
			entries := aggregate.Ranked(totals)

			Convey("Then entries should be ordered by score desc, name asc", func() {
				So(entries, ShouldHaveLength, 4)
				So(entries[0], ShouldResemble, model.TeamTotal{Rank: 1, TeamName: "A", Score: 15})
				So(entries[1], ShouldResemble, model.TeamTotal{Rank: 2, TeamName: "C", Score: 15})
				So(entries[2], ShouldResemble, model.TeamTotal{Rank: 3, TeamName: "B", Score: 7})
				So(entries[3], ShouldResemble, model.TeamTotal{Rank: 4, TeamName: "D", Score: 2})
			})
		})

		Convey("When ranking an empty map", func() {
			entries := aggregate.Ranked(map[string]float64{})

			Convey("Then the result should be empty", func() {
				So(entries, ShouldBeEmpty)
			})
		})
	})
}
