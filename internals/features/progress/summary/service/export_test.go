package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/testutil"
)

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()

	Convey("Given two players with rebuilt summaries", t, func() {
		db := testutil.OpenTestDB(t)
		rubric := testutil.CreateRubric(t, db, []string{"Bronze", "Silver"}, []string{"Hitting", "Serving"})
		alex := testutil.CreateUser(t, db, "alex", constants.RolePlayer)
		testutil.CreateUser(t, db, "sam", constants.RolePlayer)
		testutil.CreateProgress(t, db, alex.ID, rubric.Criteria["Hitting"]["Bronze"].ID, constants.ProgressCompleted)

		agg := NewAggregator(db)
		_, err := agg.RebuildAll(ctx)
		So(err, ShouldBeNil)

		Convey("When the report is exported", func() {
			buf, err := agg.ExportXLSX(ctx)
			So(err, ShouldBeNil)

			f, err := excelize.OpenReader(buf)
			So(err, ShouldBeNil)
			defer f.Close()

			Convey("Then the summary sheet has a header and one row per player", func() {
				rows, err := f.GetRows(SheetSummary)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				So(rows[0], ShouldResemble, []string{"Pemain", "User ID", "Rank Saat Ini", "Selesai", "Total", "Overall %", "Bronze %", "Silver %"})
				So(rows[1][0], ShouldEqual, "alex")
				So(rows[1][2], ShouldEqual, "Bronze")
				So(rows[1][5], ShouldEqual, "25")
				So(rows[1][6], ShouldEqual, "50")
			})

			Convey("Then the categories sheet has one row per player and category", func() {
				rows, err := f.GetRows(SheetCategories)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 5)
				So(rows[1], ShouldResemble, []string{"alex", "Hitting", "Silver", "1", "2", "50"})
				So(rows[2], ShouldResemble, []string{"alex", "Serving", "Bronze", "0", "2", "0"})
			})
		})
	})
}
