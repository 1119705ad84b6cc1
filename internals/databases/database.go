package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/configs"
	rubricModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
	progressModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/model"
	sessionModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/model"
	summaryModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/model"
	userModel "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  configs.DatabaseDSN(),
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Models daftar tabel yang dikelola aplikasi (urutan = urutan FK).
func Models() []interface{} {
	return []interface{}{
		&userModel.UserModel{},
		&rubricModel.RankModel{},
		&rubricModel.CategoryModel{},
		&rubricModel.CriterionModel{},
		&sessionModel.SessionModel{},
		&sessionModel.SessionCriterionModel{},
		&sessionModel.SessionAttendanceModel{},
		&progressModel.ProgressRecordModel{},
		&summaryModel.PlayerProgressSummaryModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("db belum terkoneksi")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
