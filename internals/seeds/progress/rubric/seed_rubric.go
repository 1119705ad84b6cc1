package rubric

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
)

type RankSeed struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type CriterionSeed struct {
	Name     string `json:"name"`
	Rank     string `json:"rank"`
	Category string `json:"category"`
}

// RubricSeed isi file data_rubric.json.
type RubricSeed struct {
	Ranks      []RankSeed      `json:"ranks"`
	Categories []string        `json:"categories"`
	Criteria   []CriterionSeed `json:"criteria"`
}

func SeedRubricFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca file rubric: %w", err)
	}
	var input RubricSeed
	if err := json.Unmarshal(file, &input); err != nil {
		return fmt.Errorf("decode rubric: %w", err)
	}
	return SeedRubric(db, input)
}

// SeedRubric idempoten: rank (per level), kategori (per nama), dan criteria
// (per nama + rank + kategori) yang sudah ada dilewati.
func SeedRubric(db *gorm.DB, input RubricSeed) error {
	return db.Transaction(func(tx *gorm.DB) error {
		rankIDs := map[string]uint{}
		for _, r := range input.Ranks {
			row := model.RankModel{Name: r.Name, Level: r.Level}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "level"}},
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("insert rank %s: %w", r.Name, err)
			}
			if err := tx.Where("level = ?", r.Level).Take(&row).Error; err != nil {
				return fmt.Errorf("ambil rank %s: %w", r.Name, err)
			}
			rankIDs[r.Name] = row.ID
		}

		catIDs := map[string]uint{}
		for _, name := range input.Categories {
			row := model.CategoryModel{Name: name}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("insert kategori %s: %w", name, err)
			}
			if err := tx.Where("name = ?", name).Take(&row).Error; err != nil {
				return fmt.Errorf("ambil kategori %s: %w", name, err)
			}
			catIDs[name] = row.ID
		}

		inserted := 0
		for _, c := range input.Criteria {
			rankID, ok := rankIDs[c.Rank]
			if !ok {
				return fmt.Errorf("criteria %q: rank %q tidak ada di seed", c.Name, c.Rank)
			}
			catID, ok := catIDs[c.Category]
			if !ok {
				return fmt.Errorf("criteria %q: kategori %q tidak ada di seed", c.Name, c.Category)
			}

			var count int64
			if err := tx.Model(&model.CriterionModel{}).
				Where("name = ? AND rank_id = ? AND category_id = ?", c.Name, rankID, catID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("cek criteria %q: %w", c.Name, err)
			}
			if count > 0 {
				continue
			}
			row := model.CriterionModel{Name: c.Name, RankID: rankID, CategoryID: catID}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert criteria %q: %w", c.Name, err)
			}
			inserted++
		}
		log.Printf("✅ Rubric: %d rank, %d kategori, %d criteria baru", len(rankIDs), len(catIDs), inserted)
		return nil
	})
}
