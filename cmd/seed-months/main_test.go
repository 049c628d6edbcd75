package main

import (
	"context"
	"testing"
	"time"

	source "github.com/okian/tally/internal/adapters/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generation run", t, func() {
		dir := t.TempDir()
		start, _ := time.Parse("2006-01-02", "2026-01-01")

		err := generate(dir, 3, 4, 42, start)
		So(err, ShouldBeNil)

		Convey("When loading the generated files through a FileSource", func() {
			src := source.NewFileSource(dir)
			ctx := context.Background()

			manifest, err := src.Manifest(ctx)
			So(err, ShouldBeNil)

			Convey("Then the manifest should list every month", func() {
				So(manifest.Months, ShouldResemble, []string{"1", "2", "3"})
			})

			Convey("Then every month should parse with plausible submissions", func() {
				for _, id := range manifest.Months {
					month, err := src.Month(ctx, id)
					So(err, ShouldBeNil)
					So(month.Label, ShouldNotBeEmpty)
					So(len(month.Submissions), ShouldBeLessThanOrEqualTo, 4)
					for _, sub := range month.Submissions {
						So(sub.TeamName, ShouldNotBeEmpty)
						So(sub.Score, ShouldBeGreaterThanOrEqualTo, 0)
					}
				}
			})
		})

		Convey("When generating again with the same seed", func() {
			other := t.TempDir()
			So(generate(other, 3, 4, 42, start), ShouldBeNil)

			src1 := source.NewFileSource(dir)
			src2 := source.NewFileSource(other)
			ctx := context.Background()

			Convey("Then the score data should be identical", func() {
				for _, id := range []string{"1", "2", "3"} {
					m1, err1 := src1.Month(ctx, id)
					m2, err2 := src2.Month(ctx, id)
					So(err1, ShouldBeNil)
					So(err2, ShouldBeNil)
					So(m2.Submissions, ShouldResemble, m1.Submissions)
				}
			})
		})
	})
}
