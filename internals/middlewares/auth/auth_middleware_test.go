package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/jgretton/junior-development-programme-sub000/internals/configs"
	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	authService "github.com/jgretton/junior-development-programme-sub000/internals/features/users/auth/service"
	userModel "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
	"github.com/jgretton/junior-development-programme-sub000/internals/testutil"
)

const testSecret = "rahasia-test"

func signed(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func issue(t *testing.T, u userModel.UserModel) string {
	t.Helper()
	tok, err := authService.IssueAccessToken(u, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	Convey("Given an app with a coach-only route", t, func() {
		configs.JWTSecret = testSecret
		db := testutil.OpenTestDB(t)
		coach := testutil.CreateUser(t, db, "coach", constants.RoleCoach)
		player := testutil.CreateUser(t, db, "alex", constants.RolePlayer)

		app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
		app.Get("/c/ping",
			AuthMiddleware(db),
			OnlyRolesSlice(constants.RoleErrorCoach("ping"), constants.CoachAndAbove),
			func(c *fiber.Ctx) error {
				actor, err := helper.GetActor(c)
				if err != nil {
					return err
				}
				return c.SendString(actor.ID.String() + "|" + actor.Role.String())
			})

		call := func(token string) int {
			req := httptest.NewRequest("GET", "/c/ping", nil)
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			resp, err := app.Test(req)
			So(err, ShouldBeNil)
			return resp.StatusCode
		}

		Convey("When no token is sent", func() {
			Convey("Then the request is unauthorized", func() {
				So(call(""), ShouldEqual, fiber.StatusUnauthorized)
			})
		})

		Convey("When a coach token is sent", func() {
			Convey("Then the request passes", func() {
				So(call(issue(t, coach)), ShouldEqual, fiber.StatusOK)
			})
		})

		Convey("When the token comes from the access_token cookie", func() {
			req := httptest.NewRequest("GET", "/c/ping", nil)
			req.Header.Set("Cookie", "access_token="+issue(t, coach))
			resp, err := app.Test(req)

			Convey("Then the request passes", func() {
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, fiber.StatusOK)
			})
		})

		Convey("When a player token is sent", func() {
			Convey("Then the role guard forbids it", func() {
				So(call(issue(t, player)), ShouldEqual, fiber.StatusForbidden)
			})
		})

		Convey("When the token is expired", func() {
			tok := signed(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"id": coach.ID.String(), "role": "coach", "exp": time.Now().Add(-time.Hour).Unix(),
			})

			Convey("Then the request is unauthorized", func() {
				So(call(tok), ShouldEqual, fiber.StatusUnauthorized)
			})
		})

		Convey("When the token is signed with another secret", func() {
			tok := signed(t, jwt.SigningMethodHS256, "lain", jwt.MapClaims{
				"id": coach.ID.String(), "role": "coach", "exp": time.Now().Add(time.Hour).Unix(),
			})

			Convey("Then the request is unauthorized", func() {
				So(call(tok), ShouldEqual, fiber.StatusUnauthorized)
			})
		})

		Convey("When the token uses another algorithm", func() {
			tok := signed(t, jwt.SigningMethodHS512, testSecret, jwt.MapClaims{
				"id": coach.ID.String(), "role": "coach", "exp": time.Now().Add(time.Hour).Unix(),
			})

			Convey("Then the request is unauthorized", func() {
				So(call(tok), ShouldEqual, fiber.StatusUnauthorized)
			})
		})

		Convey("When the role claim is unknown", func() {
			tok := signed(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"id": coach.ID.String(), "role": "owner", "exp": time.Now().Add(time.Hour).Unix(),
			})

			Convey("Then the request is forbidden", func() {
				So(call(tok), ShouldEqual, fiber.StatusForbidden)
			})
		})

		Convey("When the user no longer exists", func() {
			ghost := userModel.UserModel{UserName: "ghost", Role: constants.RoleCoach}
			ghost.ID = player.ID
			ghost.ID[0] ^= 0xff

			Convey("Then the request is unauthorized", func() {
				So(call(issue(t, ghost)), ShouldEqual, fiber.StatusUnauthorized)
			})
		})

		Convey("When the user is deactivated", func() {
			So(db.Model(&userModel.UserModel{}).Where("id = ?", coach.ID).Update("is_active", false).Error, ShouldBeNil)

			Convey("Then the request is forbidden", func() {
				So(call(issue(t, coach)), ShouldEqual, fiber.StatusForbidden)
			})
		})
	})
}
