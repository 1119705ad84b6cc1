package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/jgretton/junior-development-programme-sub000/internals/configs"
	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	progressDTO "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/dto"
	summaryModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/model"
	authService "github.com/jgretton/junior-development-programme-sub000/internals/features/users/auth/service"
	userModel "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
	"github.com/jgretton/junior-development-programme-sub000/internals/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestProgressFlow(t *testing.T) {
	Convey("Given the full router with a seeded rubric", t, func() {
		configs.JWTSecret = "rahasia-e2e"
		db := testutil.OpenTestDB(t)
		rubric := testutil.CreateRubric(t, db, []string{"Bronze", "Silver", "Gold", "Platinum"}, []string{"Hitting"})
		admin := testutil.CreateUser(t, db, "admin", constants.RoleAdmin)
		coach := testutil.CreateUser(t, db, "coach", constants.RoleCoach)
		observer := testutil.CreateUser(t, db, "observer", constants.RoleObserver)
		alex := testutil.CreateUser(t, db, "alex", constants.RolePlayer)

		app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
		SetupRoutes(app, db)

		do := func(as *userModel.UserModel, method, path string, body interface{}) (int, envelope) {
			var reader *bytes.Reader
			if body != nil {
				raw, err := json.Marshal(body)
				So(err, ShouldBeNil)
				reader = bytes.NewReader(raw)
			} else {
				reader = bytes.NewReader(nil)
			}
			req := httptest.NewRequest(method, path, reader)
			req.Header.Set("Content-Type", "application/json")
			if as != nil {
				tok, err := authService.IssueAccessToken(*as, configs.JWTSecret, time.Hour)
				So(err, ShouldBeNil)
				req.Header.Set("Authorization", "Bearer "+tok)
			}
			resp, err := app.Test(req, -1)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			var env envelope
			_ = json.NewDecoder(resp.Body).Decode(&env)
			return resp.StatusCode, env
		}

		bronze := rubric.Criteria["Hitting"]["Bronze"].ID
		submission := map[string]interface{}{
			"session": map[string]interface{}{
				"name":         "Latihan Selasa",
				"date":         "2026-04-07",
				"criteria_ids": []uint{bronze},
			},
			"attending_players": []string{alex.ID.String()},
			"assignments": map[string][]string{
				fmt.Sprint(bronze): {alex.ID.String()},
			},
		}

		Convey("Then health is public", func() {
			code, _ := do(nil, http.MethodGet, "/health", nil)
			So(code, ShouldEqual, fiber.StatusOK)
		})

		Convey("Then observers cannot submit assessments", func() {
			code, _ := do(&observer, http.MethodPost, "/api/c/assessments", submission)
			So(code, ShouldEqual, fiber.StatusForbidden)
		})

		Convey("Then players cannot open the approval queue", func() {
			code, _ := do(&alex, http.MethodGet, "/api/a/approvals/pending", nil)
			So(code, ShouldEqual, fiber.StatusForbidden)
		})

		Convey("Then players cannot list every summary", func() {
			code, _ := do(&alex, http.MethodGet, "/api/u/summaries", nil)
			So(code, ShouldEqual, fiber.StatusForbidden)
		})

		Convey("Then a player without any record sees a zero summary", func() {
			code, env := do(&alex, http.MethodGet, "/api/u/summaries/me", nil)
			So(code, ShouldEqual, fiber.StatusOK)
			var s summaryModel.PlayerProgressSummaryModel
			So(json.Unmarshal(env.Data, &s), ShouldBeNil)
			So(s.OverallPercentage, ShouldEqual, 0)
			So(s.OverallTotal, ShouldEqual, 4)
			So(*s.CurrentRankID, ShouldEqual, rubric.Rank("Bronze").ID)
		})

		Convey("Then recomputing a staff member is a 404", func() {
			code, _ := do(&admin, http.MethodPost, "/api/a/summaries/"+coach.ID.String()+"/recompute", nil)
			So(code, ShouldEqual, fiber.StatusNotFound)
		})

		Convey("Then an invalid submission is a 422", func() {
			code, _ := do(&coach, http.MethodPost, "/api/c/assessments", map[string]interface{}{
				"session_id":        999,
				"attending_players": []string{alex.ID.String()},
			})
			So(code, ShouldEqual, fiber.StatusUnprocessableEntity)
		})

		Convey("When a coach submits and an admin approves", func() {
			code, env := do(&coach, http.MethodPost, "/api/c/assessments", submission)
			So(code, ShouldEqual, fiber.StatusCreated)
			var submitted struct {
				SessionID uint `json:"session_id"`
				Created   int  `json:"created"`
			}
			So(json.Unmarshal(env.Data, &submitted), ShouldBeNil)
			So(submitted.Created, ShouldEqual, 1)

			code, env = do(&admin, http.MethodGet, "/api/a/approvals/pending", nil)
			So(code, ShouldEqual, fiber.StatusOK)
			var pending []progressDTO.PendingSession
			So(json.Unmarshal(env.Data, &pending), ShouldBeNil)
			So(pending, ShouldHaveLength, 1)
			So(pending[0].SessionID, ShouldEqual, submitted.SessionID)
			recordID := pending[0].Criteria[0].Records[0].ID

			code, env = do(&admin, http.MethodPost, "/api/a/approvals/approve", map[string]interface{}{"ids": []uint{recordID}})
			So(code, ShouldEqual, fiber.StatusOK)
			var approved progressDTO.ApproveResponse
			So(json.Unmarshal(env.Data, &approved), ShouldBeNil)
			So(approved.Updated, ShouldEqual, 1)

			Convey("Then the player sees 25 percent and Silver as current rank", func() {
				code, env := do(&alex, http.MethodGet, "/api/u/summaries/me", nil)
				So(code, ShouldEqual, fiber.StatusOK)
				var s summaryModel.PlayerProgressSummaryModel
				So(json.Unmarshal(env.Data, &s), ShouldBeNil)
				So(s.OverallPercentage, ShouldEqual, 25)
				So(*s.CurrentRankID, ShouldEqual, rubric.Rank("Silver").ID)
				So(s.CategoryProgress.Data()["Hitting"].RankName, ShouldEqual, "Silver")
			})

			Convey("Then the approval queue is empty", func() {
				code, env := do(&admin, http.MethodGet, "/api/a/approvals/pending", nil)
				So(code, ShouldEqual, fiber.StatusOK)
				So(string(env.Data), ShouldEqual, "[]")
			})

			Convey("Then resubmitting the same pair is skipped", func() {
				again := map[string]interface{}{
					"session_id":        submitted.SessionID,
					"attending_players": submission["attending_players"],
					"assignments":       submission["assignments"],
				}
				code, env := do(&coach, http.MethodPost, "/api/c/assessments", again)
				So(code, ShouldEqual, fiber.StatusCreated)
				var res struct {
					Created int `json:"created"`
					Skipped int `json:"skipped"`
				}
				So(json.Unmarshal(env.Data, &res), ShouldBeNil)
				So(res.Created, ShouldEqual, 0)
				So(res.Skipped, ShouldEqual, 1)
			})

			Convey("Then the observer can read the player's summary", func() {
				code, _ := do(&observer, http.MethodGet, "/api/u/summaries/"+alex.ID.String(), nil)
				So(code, ShouldEqual, fiber.StatusOK)
			})
		})
	})
}
