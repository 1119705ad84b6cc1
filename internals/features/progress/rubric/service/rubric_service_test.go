package service

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
	"github.com/jgretton/junior-development-programme-sub000/internals/testutil"
)

func TestRubricStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a 3x2 rubric", t, func() {
		db := testutil.OpenTestDB(t)
		rubric := testutil.CreateRubric(t, db, []string{"Bronze", "Silver", "Gold"}, []string{"Hitting", "Serving"})
		store := NewStore(db)
		bronze := rubric.Rank("Bronze")
		hitting := rubric.Categories[0]

		Convey("When totals are counted", func() {
			totals, err := store.CriteriaTotals(ctx, nil)
			So(err, ShouldBeNil)

			Convey("Then every breakdown agrees", func() {
				So(totals.All, ShouldEqual, 6)
				So(totals.ByRank[bronze.ID], ShouldEqual, 2)
				So(totals.ByCategory[hitting.ID], ShouldEqual, 3)
				So(totals.ByPair[PairKey{CategoryID: hitting.ID, RankID: bronze.ID}], ShouldEqual, 1)
			})
		})

		Convey("When criteria are filtered by rank and category", func() {
			rows, err := store.ListCriteria(ctx, nil, CriteriaFilter{RankID: &bronze.ID, CategoryID: &hitting.ID})

			Convey("Then only the matching cell is returned", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0].Name, ShouldEqual, "Hitting Bronze")
			})
		})

		Convey("When ids are checked", func() {
			missing, err := store.MissingCriteria(ctx, nil, []uint{rubric.Criteria["Hitting"]["Gold"].ID, 99, 42, 99})

			Convey("Then unknown ids come back sorted and unique", func() {
				So(err, ShouldBeNil)
				So(missing, ShouldResemble, []uint{42, 99})
			})
		})

		Convey("When ranks are listed", func() {
			ranks, err := store.ListRanks(ctx, nil)

			Convey("Then they are ordered by level", func() {
				So(err, ShouldBeNil)
				So(ranks[0].Name, ShouldEqual, "Bronze")
				So(ranks[2].Name, ShouldEqual, "Gold")
			})
		})

		Convey("When criteria reference an unknown rank", func() {
			err := store.CreateCriteria(ctx, []model.CriterionModel{
				{Name: "Jump serve", RankID: bronze.ID, CategoryID: hitting.ID},
				{Name: "Float serve", RankID: 404, CategoryID: hitting.ID},
			})

			Convey("Then nothing is inserted", func() {
				So(err, ShouldEqual, ErrRankNotFound)
				var n int64
				db.Model(&model.CriterionModel{}).Count(&n)
				So(n, ShouldEqual, 6)
			})
		})

		Convey("When criteria reference an unknown category", func() {
			err := store.CreateCriteria(ctx, []model.CriterionModel{{Name: "Pancake", RankID: bronze.ID, CategoryID: 404}})

			Convey("Then the category is reported", func() {
				So(err, ShouldEqual, ErrCategoryNotFound)
			})
		})

		Convey("When valid criteria are added", func() {
			err := store.CreateCriteria(ctx, []model.CriterionModel{{Name: "Jump serve", RankID: bronze.ID, CategoryID: rubric.Categories[1].ID}})
			So(err, ShouldBeNil)
			totals, err := store.CriteriaTotals(ctx, nil)
			So(err, ShouldBeNil)

			Convey("Then totals include them", func() {
				So(totals.All, ShouldEqual, 7)
				So(totals.ByRank[bronze.ID], ShouldEqual, 3)
			})
		})
	})

	Convey("Given an empty database", t, func() {
		db := testutil.OpenTestDB(t)
		totals, err := NewStore(db).CriteriaTotals(context.Background(), nil)

		Convey("Then totals are zero", func() {
			So(err, ShouldBeNil)
			So(totals.All, ShouldEqual, 0)
			So(totals.ByRank, ShouldBeEmpty)
		})
	})
}
