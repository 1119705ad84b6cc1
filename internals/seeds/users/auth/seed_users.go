package user

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
)

type UserSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON akun awal (admin, coach, pemain). User dengan email yang sama dilewati.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca file user: %w", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode user: %w", err)
	}

	for _, data := range inputs {
		role, err := constants.ParseRole(data.Role)
		if err != nil {
			return fmt.Errorf("user %s: %w", data.Email, err)
		}

		newUser := model.UserModel{
			UserName: data.UserName,
			Email:    data.Email,
			Role:     role,
			Status:   constants.UserStatusActive,
			IsActive: true,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&newUser)
		if res.Error != nil {
			return fmt.Errorf("insert user %s: %w", data.Email, res.Error)
		}
		if res.RowsAffected == 0 {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", data.Email)
			continue
		}
		log.Printf("✅ Berhasil insert user '%s' (%s)", data.Email, role)
	}
	return nil
}
