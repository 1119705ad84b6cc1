package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	progressModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/model"
	rubricModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
	userModel "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
)

func CreateUser(t *testing.T, db *gorm.DB, name string, role constants.Role) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserName: name,
		Email:    name + "@example.test",
		Role:     role,
		Status:   constants.UserStatusActive,
		IsActive: true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

// Rubric hasil fixture; Criteria[categoryName][rankName] → criteria.
type Rubric struct {
	Ranks      []rubricModel.RankModel
	Categories []rubricModel.CategoryModel
	Criteria   map[string]map[string]rubricModel.CriterionModel
}

// CreateRubric satu criteria untuk setiap (kategori, rank). Level rank = urutan di slice (mulai 1).
func CreateRubric(t *testing.T, db *gorm.DB, rankNames, categoryNames []string) Rubric {
	t.Helper()
	out := Rubric{Criteria: map[string]map[string]rubricModel.CriterionModel{}}

	for i, name := range rankNames {
		r := rubricModel.RankModel{Name: name, Level: i + 1}
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("create rank %s: %v", name, err)
		}
		out.Ranks = append(out.Ranks, r)
	}
	for _, name := range categoryNames {
		c := rubricModel.CategoryModel{Name: name}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("create category %s: %v", name, err)
		}
		out.Categories = append(out.Categories, c)
		out.Criteria[name] = map[string]rubricModel.CriterionModel{}
		for _, r := range out.Ranks {
			cr := rubricModel.CriterionModel{Name: name + " " + r.Name, RankID: r.ID, CategoryID: c.ID}
			if err := db.Create(&cr).Error; err != nil {
				t.Fatalf("create criterion: %v", err)
			}
			out.Criteria[name][r.Name] = cr
		}
	}
	return out
}

func (r Rubric) Rank(name string) rubricModel.RankModel {
	for _, rk := range r.Ranks {
		if rk.Name == name {
			return rk
		}
	}
	return rubricModel.RankModel{}
}

// CreateProgress tulis record langsung, melewati Store (tanpa recompute summary).
func CreateProgress(t *testing.T, db *gorm.DB, userID uuid.UUID, criterionID uint, status constants.ProgressStatus) progressModel.ProgressRecordModel {
	t.Helper()
	rec := progressModel.ProgressRecordModel{
		UserID:     userID,
		CriteriaID: criterionID,
		Status:     status,
		AssessedBy: userID,
		SessionID:  1,
		AssessedAt: time.Now(),
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("create progress: %v", err)
	}
	return rec
}
