package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/model"
	"github.com/jgretton/junior-development-programme-sub000/internals/metrics"
)

// SummaryRecomputer dipanggil setelah setiap mutasi progress_records,
// sekali untuk setiap pemain yang terdampak, di transaksi yang sama.
type SummaryRecomputer interface {
	RecomputePlayers(ctx context.Context, tx *gorm.DB, playerIDs []uuid.UUID) error
}

// Pair satu pasangan (pemain, criteria).
type Pair struct {
	UserID     uuid.UUID
	CriteriaID uint
}

// Store satu-satunya jalur tulis ke progress_records.
type Store struct {
	DB      *gorm.DB
	Summary SummaryRecomputer
}

func NewStore(db *gorm.DB, summary SummaryRecomputer) *Store {
	return &Store{DB: db, Summary: summary}
}

func (s *Store) inTx(ctx context.Context, tx *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx != nil {
		return fn(tx.WithContext(ctx))
	}
	return s.DB.WithContext(ctx).Transaction(fn)
}

// CreatePending buat record PENDING per pasangan. Pasangan yang sudah punya record
// (pending maupun completed, termasuk kalah balapan insert) dilewati tanpa error.
func (s *Store) CreatePending(ctx context.Context, tx *gorm.DB, sessionID uint, assessedBy uuid.UUID, pairs []Pair, at time.Time) (int, error) {
	created, conflicts := 0, 0
	err := s.inTx(ctx, tx, func(tx *gorm.DB) error {
		var affected []uuid.UUID
		seen := map[Pair]bool{}
		for _, p := range pairs {
			if seen[p] {
				continue
			}
			seen[p] = true

			rec := model.ProgressRecordModel{
				UserID:     p.UserID,
				CriteriaID: p.CriteriaID,
				Status:     constants.ProgressPending,
				AssessedBy: assessedBy,
				SessionID:  sessionID,
				AssessedAt: at,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "criteria_id"}},
				DoNothing: true,
			}).Create(&rec)
			if res.Error != nil {
				return fmt.Errorf("simpan progress (%s, %d): %w", p.UserID, p.CriteriaID, res.Error)
			}
			if res.RowsAffected == 0 {
				conflicts++
				continue
			}
			created++
			affected = append(affected, p.UserID)
		}
		return s.Summary.RecomputePlayers(ctx, tx, affected)
	})
	if err != nil {
		return 0, err
	}
	metrics.RecordProgress("created", created)
	metrics.RecordProgress("skipped", conflicts)
	return created, nil
}

// Complete ubah record PENDING → COMPLETED. Id lain (completed / tidak ada) diabaikan.
func (s *Store) Complete(ctx context.Context, tx *gorm.DB, ids []uint, approver uuid.UUID, at time.Time) (int, error) {
	updated := 0
	err := s.inTx(ctx, tx, func(tx *gorm.DB) error {
		recs, err := pendingByIDs(tx, ids)
		if err != nil || len(recs) == 0 {
			return err
		}

		res := tx.Model(&model.ProgressRecordModel{}).
			Where("id IN ? AND status = ?", idsOf(recs), constants.ProgressPending).
			Updates(map[string]interface{}{
				"status":      constants.ProgressCompleted,
				"approved_by": approver,
				"approved_at": at,
				"updated_at":  at,
			})
		if res.Error != nil {
			return fmt.Errorf("approve progress: %w", res.Error)
		}
		updated = int(res.RowsAffected)
		return s.Summary.RecomputePlayers(ctx, tx, playersOf(recs))
	})
	if err != nil {
		return 0, err
	}
	metrics.RecordProgress("approved", updated)
	return updated, nil
}

// DeletePending hapus permanen record PENDING. Tidak ada soft delete.
func (s *Store) DeletePending(ctx context.Context, tx *gorm.DB, ids []uint) (int, error) {
	deleted := 0
	err := s.inTx(ctx, tx, func(tx *gorm.DB) error {
		recs, err := pendingByIDs(tx, ids)
		if err != nil || len(recs) == 0 {
			return err
		}

		res := tx.Where("id IN ? AND status = ?", idsOf(recs), constants.ProgressPending).
			Delete(&model.ProgressRecordModel{})
		if res.Error != nil {
			return fmt.Errorf("reject progress: %w", res.Error)
		}
		deleted = int(res.RowsAffected)
		return s.Summary.RecomputePlayers(ctx, tx, playersOf(recs))
	})
	if err != nil {
		return 0, err
	}
	metrics.RecordProgress("rejected", deleted)
	return deleted, nil
}

// CompletedCriteria map criteria_id → pemain yang sudah COMPLETED (untuk eligibility).
func (s *Store) CompletedCriteria(ctx context.Context, tx *gorm.DB, criteriaIDs []uint, playerIDs []uuid.UUID) (map[uint]map[uuid.UUID]bool, error) {
	out := map[uint]map[uuid.UUID]bool{}
	if len(criteriaIDs) == 0 || len(playerIDs) == 0 {
		return out, nil
	}
	db := s.DB
	if tx != nil {
		db = tx
	}
	var rows []Pair
	if err := db.WithContext(ctx).
		Model(&model.ProgressRecordModel{}).
		Select("user_id, criteria_id").
		Where("criteria_id IN ? AND user_id IN ? AND status = ?", criteriaIDs, playerIDs, constants.ProgressCompleted).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("cek completed: %w", err)
	}
	for _, r := range rows {
		if out[r.CriteriaID] == nil {
			out[r.CriteriaID] = map[uuid.UUID]bool{}
		}
		out[r.CriteriaID][r.UserID] = true
	}
	return out, nil
}

func pendingByIDs(tx *gorm.DB, ids []uint) ([]model.ProgressRecordModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recs []model.ProgressRecordModel
	if err := tx.Where("id IN ? AND status = ?", ids, constants.ProgressPending).
		Order("id ASC").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("ambil progress pending: %w", err)
	}
	return recs, nil
}

func idsOf(recs []model.ProgressRecordModel) []uint {
	out := make([]uint, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func playersOf(recs []model.ProgressRecordModel) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.UserID)
	}
	return out
}
