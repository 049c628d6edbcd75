package display_test

import (
	"testing"

	display "github.com/okian/tally/internal/domain/display"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatDate(t *testing.T) {
	Convey("Given date strings", t, func() {
		Convey("When formatting a plain date", func() {
			So(display.FormatDate("2026-03-01"), ShouldEqual, "March 1, 2026")
		})

		Convey("When formatting an RFC3339 timestamp", func() {
			So(display.FormatDate("2026-03-01T12:30:00Z"), ShouldEqual, "March 1, 2026")
		})

		Convey("When formatting garbage", func() {
			So(display.FormatDate("not-a-date"), ShouldEqual, "Invalid Date")
			So(display.FormatDate(""), ShouldEqual, "Invalid Date")
			So(display.FormatDate("2026-13-45"), ShouldEqual, "Invalid Date")
		})
	})
}

func TestEscapeHTML(t *testing.T) {
	Convey("Given strings with markup", t, func() {
		Convey("When escaping", func() {
			So(display.EscapeHTML(`<b>Team & "Friends"</b>`), ShouldEqual,
				"&lt;b&gt;Team &amp; &#34;Friends&#34;&lt;/b&gt;")
		})

		Convey("When escaping plain text", func() {
			So(display.EscapeHTML("Red Raccoons"), ShouldEqual, "Red Raccoons")
		})

		Convey("When escaping the empty string", func() {
			So(display.EscapeHTML(""), ShouldEqual, "")
		})
	})
}
