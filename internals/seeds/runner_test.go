package seeds

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"

	rubricModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
	userModel "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
	"github.com/jgretton/junior-development-programme-sub000/internals/testutil"
)

func counts(db *gorm.DB) [4]int64 {
	var out [4]int64
	db.Model(&rubricModel.RankModel{}).Count(&out[0])
	db.Model(&rubricModel.CategoryModel{}).Count(&out[1])
	db.Model(&rubricModel.CriterionModel{}).Count(&out[2])
	db.Model(&userModel.UserModel{}).Count(&out[3])
	return out
}

func TestRunAllSeeds(t *testing.T) {
	Convey("Given an empty database", t, func() {
		db := testutil.OpenTestDB(t)

		Convey("When the seeds run twice", func() {
			So(RunAllSeeds(db, "."), ShouldBeNil)
			first := counts(db)
			So(RunAllSeeds(db, "."), ShouldBeNil)

			Convey("Then the bundled rubric and users are loaded once", func() {
				So(first, ShouldResemble, [4]int64{4, 5, 21, 5})
				So(counts(db), ShouldResemble, first)
			})
		})

		Convey("When the seed directory is wrong", func() {
			err := RunAllSeeds(db, "does-not-exist")

			Convey("Then the read error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
