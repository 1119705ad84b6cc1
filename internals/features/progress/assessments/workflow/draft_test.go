package workflow

import (
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDraftTransitions(t *testing.T) {
	alex, sam, kim := uuid.New(), uuid.New(), uuid.New()

	Convey("Given a draft with two focus criteria", t, func() {
		d := NewDraft([]uint{1, 2, 1}, Completed{2: {sam: true}})

		Convey("Then it starts in selecting attendance", func() {
			So(d.State(), ShouldEqual, SelectingAttendance)
			So(d.State().String(), ShouldEqual, "selecting_attendance")
		})

		Convey("When nobody is marked present", func() {
			err := d.StartAssessing()

			Convey("Then assessing cannot start", func() {
				So(err, ShouldEqual, ErrNoAttendance)
				So(d.State(), ShouldEqual, SelectingAttendance)
			})
		})

		Convey("When alex and sam attend", func() {
			So(d.SetAttendance(alex, true), ShouldBeNil)
			So(d.SetAttendance(sam, true), ShouldBeNil)
			So(d.SetAttendance(alex, true), ShouldBeNil)
			So(d.StartAssessing(), ShouldBeNil)

			Convey("Then attendance keeps the marking order without duplicates", func() {
				So(d.Attending(), ShouldResemble, []uuid.UUID{alex, sam})
			})

			Convey("Then attendance is frozen while assessing", func() {
				So(d.SetAttendance(kim, true), ShouldEqual, ErrInvalidTransition)
			})

			Convey("Then eligibility excludes absent and already completed players", func() {
				So(d.Eligible(2, alex), ShouldBeTrue)
				So(d.Eligible(2, sam), ShouldBeFalse)
				So(d.Eligible(1, kim), ShouldBeFalse)
			})

			Convey("Then marking guards reject invalid pairs", func() {
				So(d.SetAchieved(2, sam, true), ShouldEqual, ErrAlreadyCompleted)
				So(d.SetAchieved(1, kim, true), ShouldEqual, ErrNotAttending)
				So(d.SetAchieved(9, alex, true), ShouldEqual, ErrUnknownCriterion)
			})

			Convey("When an extra criterion is added and marked", func() {
				So(d.AddCriterion(7), ShouldBeNil)
				So(d.AddCriterion(7), ShouldBeNil)
				So(d.SetAchieved(7, sam, true), ShouldBeNil)
				So(d.SetAchieved(1, sam, true), ShouldBeNil)
				So(d.SetAchieved(1, alex, true), ShouldBeNil)

				Convey("Then the submission lists players in attendance order", func() {
					sub := d.Submission()
					So(sub.Assignments[1], ShouldResemble, []uuid.UUID{alex, sam})
					So(sub.Assignments[7], ShouldResemble, []uuid.UUID{sam})
					So(sub.Assignments, ShouldNotContainKey, uint(2))
				})

				Convey("Then unmarking removes the pair", func() {
					So(d.SetAchieved(1, alex, false), ShouldBeNil)
					So(d.Submission().Assignments[1], ShouldResemble, []uuid.UUID{sam})
				})

				Convey("When review starts", func() {
					review, err := d.StartReview()
					So(err, ShouldBeNil)

					Convey("Then criteria keep their order and focus flag", func() {
						So(review.Criteria, ShouldHaveLength, 3)
						So(review.Criteria[0].CriterionID, ShouldEqual, 1)
						So(review.Criteria[0].IsFocus, ShouldBeTrue)
						So(review.Criteria[2].CriterionID, ShouldEqual, 7)
						So(review.Criteria[2].IsFocus, ShouldBeFalse)
						So(review.PendingToCreate, ShouldEqual, 3)
					})

					Convey("Then the unassessed focus criterion is a warning", func() {
						So(review.Warnings, ShouldHaveLength, 1)
						So(review.Warnings[0].Kind, ShouldEqual, WarnCriterionWithoutPlayers)
						So(*review.Warnings[0].CriterionID, ShouldEqual, 2)
					})

					Convey("Then submit is terminal", func() {
						sub, err := d.Submit()
						So(err, ShouldBeNil)
						So(sub.AttendingPlayers, ShouldResemble, []uuid.UUID{alex, sam})
						So(d.State(), ShouldEqual, Submitted)

						_, err = d.Submit()
						So(err, ShouldEqual, ErrAlreadySubmitted)
						So(d.BackToAttendance(), ShouldEqual, ErrInvalidTransition)
					})

					Convey("Then going back to attendance and removing a player drops their marks", func() {
						So(d.BackToAttendance(), ShouldBeNil)
						So(d.SetAttendance(sam, false), ShouldBeNil)
						sub := d.Submission()
						So(sub.Assignments[1], ShouldResemble, []uuid.UUID{alex})
						So(sub.Assignments, ShouldNotContainKey, uint(7))
					})
				})
			})
		})

		Convey("When submit is attempted before review", func() {
			_, err := d.Submit()

			Convey("Then the transition is rejected", func() {
				So(err, ShouldEqual, ErrInvalidTransition)
			})
		})
	})
}

func TestBuildReview(t *testing.T) {
	alex, sam := uuid.New(), uuid.New()

	Convey("Given assignments where one pair is already completed", t, func() {
		review := BuildReview(
			[]uuid.UUID{alex, sam},
			[]uint{3},
			map[uint]bool{3: true},
			map[uint][]uuid.UUID{3: {alex, alex}, 5: {sam}},
			Completed{5: {sam: true}},
		)

		Convey("Then the completed pair is not counted as new", func() {
			So(review.PendingToCreate, ShouldEqual, 1)
			So(review.Criteria[1].CriterionID, ShouldEqual, 5)
			So(review.Criteria[1].AlreadyCompleted, ShouldResemble, []uuid.UUID{sam})
		})

		Convey("Then both kinds of warning are raised", func() {
			So(review.HasWarnings(), ShouldBeTrue)
			kinds := map[WarningKind]int{}
			for _, w := range review.Warnings {
				kinds[w.Kind]++
			}
			So(kinds[WarnCriterionWithoutPlayers], ShouldEqual, 1)
			So(kinds[WarnPlayerWithoutAchievement], ShouldEqual, 1)
		})

		Convey("Then players list their achievements", func() {
			So(review.Players[0].Achieved, ShouldResemble, []uint{3})
			So(review.Players[1].Achieved, ShouldBeEmpty)
		})
	})
}
