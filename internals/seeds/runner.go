package seeds

import (
	"path/filepath"

	"gorm.io/gorm"

	rubric "github.com/jgretton/junior-development-programme-sub000/internals/seeds/progress/rubric"
	users "github.com/jgretton/junior-development-programme-sub000/internals/seeds/users/auth"
)

// RunAllSeeds jalankan seed berurutan; dir = root folder internals/seeds.
func RunAllSeeds(db *gorm.DB, dir string) error {
	//* Rubric
	if err := rubric.SeedRubricFromJSON(db, filepath.Join(dir, "progress/rubric/data_rubric.json")); err != nil {
		return err
	}

	//* User
	if err := users.SeedUsersFromJSON(db, filepath.Join(dir, "users/auth/data_users.json")); err != nil {
		return err
	}
	return nil
}
