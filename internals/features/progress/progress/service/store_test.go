package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/model"
	sessionService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/service"
	summaryService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
	"github.com/jgretton/junior-development-programme-sub000/internals/metrics"
	"github.com/jgretton/junior-development-programme-sub000/internals/testutil"
)

// recordingRecomputer catat pemain yang diminta recompute.
type recordingRecomputer struct {
	calls [][]uuid.UUID
}

func (r *recordingRecomputer) RecomputePlayers(_ context.Context, _ *gorm.DB, ids []uuid.UUID) error {
	r.calls = append(r.calls, append([]uuid.UUID(nil), ids...))
	return nil
}

var errRecompute = errors.New("recompute gagal")

// failingRecomputer selalu gagal, transaksi mutasi harus ikut batal.
type failingRecomputer struct{}

func (failingRecomputer) RecomputePlayers(context.Context, *gorm.DB, []uuid.UUID) error {
	return errRecompute
}

func skippedTotal() float64 {
	return promtest.ToFloat64(metrics.Default().ProgressCounter("skipped"))
}

func countSummaries(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Table("player_progress_summaries").Count(&n).Error; err != nil {
		t.Fatalf("count summaries: %v", err)
	}
	return n
}

func countRecords(t *testing.T, db *gorm.DB, status constants.ProgressStatus) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.ProgressRecordModel{}).Where("status = ?", status).Count(&n).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	return n
}

func TestCreatePending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	Convey("Given a rubric, a coach and two players", t, func() {
		db := testutil.OpenTestDB(t)
		rubric := testutil.CreateRubric(t, db, []string{"Bronze", "Silver"}, []string{"Hitting"})
		coach := testutil.CreateUser(t, db, "coach", constants.RoleCoach)
		alex := testutil.CreateUser(t, db, "alex", constants.RolePlayer)
		sam := testutil.CreateUser(t, db, "sam", constants.RolePlayer)
		bronze := rubric.Criteria["Hitting"]["Bronze"].ID

		rec := &recordingRecomputer{}
		store := NewStore(db, rec)
		pairs := []Pair{{UserID: alex.ID, CriteriaID: bronze}, {UserID: sam.ID, CriteriaID: bronze}}

		Convey("When the same pairs are submitted twice", func() {
			first, err := store.CreatePending(ctx, nil, 1, coach.ID, pairs, now)
			So(err, ShouldBeNil)
			second, err := store.CreatePending(ctx, nil, 2, coach.ID, pairs, now)
			So(err, ShouldBeNil)

			Convey("Then only the first call creates records", func() {
				So(first, ShouldEqual, 2)
				So(second, ShouldEqual, 0)
				So(countRecords(t, db, constants.ProgressPending), ShouldEqual, 2)
			})

			Convey("Then the original session id is kept", func() {
				var r model.ProgressRecordModel
				So(db.Where("user_id = ?", alex.ID).Take(&r).Error, ShouldBeNil)
				So(r.SessionID, ShouldEqual, 1)
				So(r.AssessedBy, ShouldEqual, coach.ID)
			})

			Convey("Then recompute is only requested for players that changed", func() {
				So(rec.calls, ShouldHaveLength, 2)
				So(rec.calls[0], ShouldHaveLength, 2)
				So(rec.calls[1], ShouldBeEmpty)
			})
		})

		Convey("When a pair appears twice in one batch", func() {
			skippedBefore := skippedTotal()
			created, err := store.CreatePending(ctx, nil, 1, coach.ID, append(pairs, pairs[0]), now)

			Convey("Then it is stored once", func() {
				So(err, ShouldBeNil)
				So(created, ShouldEqual, 2)
			})

			Convey("Then the in-batch duplicate is not counted as skipped", func() {
				So(skippedTotal()-skippedBefore, ShouldEqual, 0)
			})
		})

		Convey("When the pair is already completed", func() {
			testutil.CreateProgress(t, db, alex.ID, bronze, constants.ProgressCompleted)
			skippedBefore := skippedTotal()
			created, err := store.CreatePending(ctx, nil, 1, coach.ID, pairs[:1], now)

			Convey("Then it is skipped and the record stays completed", func() {
				So(err, ShouldBeNil)
				So(created, ShouldEqual, 0)
				So(countRecords(t, db, constants.ProgressCompleted), ShouldEqual, 1)
				So(countRecords(t, db, constants.ProgressPending), ShouldEqual, 0)
			})

			Convey("Then the database conflict is counted as skipped", func() {
				So(skippedTotal()-skippedBefore, ShouldEqual, 1)
			})
		})
	})
}

func TestCompleteAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	Convey("Given one pending and one completed record", t, func() {
		db := testutil.OpenTestDB(t)
		rubric := testutil.CreateRubric(t, db, []string{"Bronze", "Silver"}, []string{"Hitting"})
		admin := testutil.CreateUser(t, db, "admin", constants.RoleAdmin)
		alex := testutil.CreateUser(t, db, "alex", constants.RolePlayer)
		pending := testutil.CreateProgress(t, db, alex.ID, rubric.Criteria["Hitting"]["Silver"].ID, constants.ProgressPending)
		done := testutil.CreateProgress(t, db, alex.ID, rubric.Criteria["Hitting"]["Bronze"].ID, constants.ProgressCompleted)

		agg := summaryService.NewAggregator(db)
		store := NewStore(db, agg)

		Convey("When both are approved", func() {
			res, err := store.Approve(ctx, admin.ID, []uint{pending.ID, done.ID, pending.ID, 9999})
			So(err, ShouldBeNil)

			Convey("Then only the pending one is updated", func() {
				So(res.Updated, ShouldEqual, 1)
				So(res.Ignored, ShouldEqual, 2)

				var r model.ProgressRecordModel
				So(db.First(&r, pending.ID).Error, ShouldBeNil)
				So(r.Status, ShouldEqual, constants.ProgressCompleted)
				So(*r.ApprovedBy, ShouldEqual, admin.ID)
				So(r.ApprovedAt, ShouldNotBeNil)
			})

			Convey("Then the summary reflects both completed records", func() {
				s, err := agg.Get(ctx, alex.ID)
				So(err, ShouldBeNil)
				So(s.OverallCompleted, ShouldEqual, 2)
				So(s.OverallPercentage, ShouldEqual, 100)
			})
		})

		Convey("When the completed record is passed to Complete directly", func() {
			n, err := store.Complete(ctx, nil, []uint{done.ID}, admin.ID, now)

			Convey("Then nothing changes", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})

		Convey("When the summary exists and the pending record is rejected", func() {
			_, err := agg.RecomputeForPlayer(ctx, nil, alex.ID)
			So(err, ShouldBeNil)
			before, err := agg.Get(ctx, alex.ID)
			So(err, ShouldBeNil)

			res, err := store.Reject(ctx, admin.ID, []uint{pending.ID, done.ID})
			So(err, ShouldBeNil)

			Convey("Then the record is gone for good", func() {
				So(res.Deleted, ShouldEqual, 1)
				So(res.Ignored, ShouldEqual, 1)
				var n int64
				db.Unscoped().Model(&model.ProgressRecordModel{}).Where("id = ?", pending.ID).Count(&n)
				So(n, ShouldEqual, 0)
			})

			Convey("Then the summary is unchanged", func() {
				after, err := agg.Get(ctx, alex.ID)
				So(err, ShouldBeNil)
				So(after.OverallCompleted, ShouldEqual, before.OverallCompleted)
				So(after.OverallPercentage, ShouldEqual, before.OverallPercentage)
				So(*after.CurrentRankID, ShouldEqual, *before.CurrentRankID)
			})

			Convey("Then the pair can be assessed again", func() {
				created, err := store.CreatePending(ctx, nil, 3, admin.ID, []Pair{{UserID: alex.ID, CriteriaID: pending.CriteriaID}}, now)
				So(err, ShouldBeNil)
				So(created, ShouldEqual, 1)
			})
		})
	})
}

func TestRecomputeFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	Convey("Given a store whose summary recompute always fails", t, func() {
		db := testutil.OpenTestDB(t)
		rubric := testutil.CreateRubric(t, db, []string{"Bronze", "Silver"}, []string{"Hitting"})
		admin := testutil.CreateUser(t, db, "admin", constants.RoleAdmin)
		alex := testutil.CreateUser(t, db, "alex", constants.RolePlayer)
		sam := testutil.CreateUser(t, db, "sam", constants.RolePlayer)
		pending := testutil.CreateProgress(t, db, alex.ID, rubric.Criteria["Hitting"]["Bronze"].ID, constants.ProgressPending)

		store := NewStore(db, failingRecomputer{})

		Convey("When a pending record is completed", func() {
			n, err := store.Complete(ctx, nil, []uint{pending.ID}, admin.ID, now)

			Convey("Then the record stays pending", func() {
				So(errors.Is(err, errRecompute), ShouldBeTrue)
				So(n, ShouldEqual, 0)
				So(countRecords(t, db, constants.ProgressPending), ShouldEqual, 1)
				So(countRecords(t, db, constants.ProgressCompleted), ShouldEqual, 0)

				var r model.ProgressRecordModel
				So(db.First(&r, pending.ID).Error, ShouldBeNil)
				So(r.ApprovedBy, ShouldBeNil)
				So(countSummaries(t, db), ShouldEqual, 0)
			})
		})

		Convey("When a pending record is deleted", func() {
			n, err := store.DeletePending(ctx, nil, []uint{pending.ID})

			Convey("Then the record is still there", func() {
				So(errors.Is(err, errRecompute), ShouldBeTrue)
				So(n, ShouldEqual, 0)
				So(countRecords(t, db, constants.ProgressPending), ShouldEqual, 1)
				So(countSummaries(t, db), ShouldEqual, 0)
			})
		})

		Convey("When new pending records are created", func() {
			n, err := store.CreatePending(ctx, nil, 1, admin.ID, []Pair{
				{UserID: sam.ID, CriteriaID: rubric.Criteria["Hitting"]["Bronze"].ID},
				{UserID: sam.ID, CriteriaID: rubric.Criteria["Hitting"]["Silver"].ID},
			}, now)

			Convey("Then none of them are kept", func() {
				So(errors.Is(err, errRecompute), ShouldBeTrue)
				So(n, ShouldEqual, 0)
				var count int64
				So(db.Model(&model.ProgressRecordModel{}).Where("user_id = ?", sam.ID).Count(&count).Error, ShouldBeNil)
				So(count, ShouldEqual, 0)
				So(countSummaries(t, db), ShouldEqual, 0)
			})
		})
	})
}

func TestListPending(t *testing.T) {
	ctx := context.Background()

	Convey("Given two sessions with pending records", t, func() {
		db := testutil.OpenTestDB(t)
		rubric := testutil.CreateRubric(t, db, []string{"Bronze"}, []string{"Hitting", "Serving"})
		coach := testutil.CreateUser(t, db, "coach", constants.RoleCoach)
		alex := testutil.CreateUser(t, db, "alex", constants.RolePlayer)
		sam := testutil.CreateUser(t, db, "sam", constants.RolePlayer)

		sessions := sessionService.NewService(db)
		older, err := sessions.Create(ctx, nil, sessionService.NewSession{
			Name: "Selasa", Date: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), CreatedBy: coach.ID,
		})
		So(err, ShouldBeNil)
		newer, err := sessions.Create(ctx, nil, sessionService.NewSession{
			Name: "Kamis", Date: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), CreatedBy: coach.ID,
		})
		So(err, ShouldBeNil)

		hitting := rubric.Criteria["Hitting"]["Bronze"].ID
		serving := rubric.Criteria["Serving"]["Bronze"].ID
		store := NewStore(db, &recordingRecomputer{})
		now := time.Now()
		_, err = store.CreatePending(ctx, nil, older.ID, coach.ID, []Pair{{UserID: sam.ID, CriteriaID: hitting}}, now)
		So(err, ShouldBeNil)
		_, err = store.CreatePending(ctx, nil, newer.ID, coach.ID, []Pair{
			{UserID: sam.ID, CriteriaID: serving},
			{UserID: alex.ID, CriteriaID: serving},
			{UserID: alex.ID, CriteriaID: hitting},
		}, now)
		So(err, ShouldBeNil)

		Convey("When the approval queue is listed", func() {
			groups, err := store.ListPending(ctx)
			So(err, ShouldBeNil)

			Convey("Then sessions come newest first", func() {
				So(groups, ShouldHaveLength, 2)
				So(groups[0].SessionName, ShouldEqual, "Kamis")
				So(groups[1].SessionName, ShouldEqual, "Selasa")
			})

			Convey("Then records are grouped by criterion and ordered by player name", func() {
				So(groups[0].Criteria, ShouldHaveLength, 2)
				So(groups[0].Criteria[0].CriterionID, ShouldEqual, hitting)
				So(groups[0].Criteria[0].RankName, ShouldEqual, "Bronze")
				So(groups[0].Criteria[0].CategoryName, ShouldEqual, "Hitting")
				serv := groups[0].Criteria[1]
				So(serv.Records, ShouldHaveLength, 2)
				So(serv.Records[0].UserName, ShouldEqual, "alex")
				So(serv.Records[1].UserName, ShouldEqual, "sam")
			})
		})

		Convey("When a player's own history is listed", func() {
			items, err := store.ListForPlayer(ctx, alex.ID)
			So(err, ShouldBeNil)

			Convey("Then only that player's records are returned", func() {
				So(items, ShouldHaveLength, 2)
				for _, it := range items {
					So(it.Status, ShouldEqual, string(constants.ProgressPending))
				}
			})
		})
	})
}
