package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/dto"
)

type pendingRow struct {
	ID            uint
	UserID        uuid.UUID
	UserName      string
	AssessedBy    uuid.UUID
	AssessedAt    time.Time
	SessionID     uint
	SessionName   string
	SessionDate   time.Time
	CriterionID   uint
	CriterionName string
	RankName      string
	CategoryName  string
}

// ListPending record PENDING dikelompokkan per sesi lalu per criteria.
func (s *Store) ListPending(ctx context.Context) ([]dto.PendingSession, error) {
	var rows []pendingRow
	if err := s.DB.WithContext(ctx).
		Table("progress_records AS p").
		Select(`p.id AS id, p.user_id AS user_id, u.user_name AS user_name,
			p.assessed_by AS assessed_by, p.assessed_at AS assessed_at,
			s.id AS session_id, s.name AS session_name, s.date AS session_date,
			c.id AS criterion_id, c.name AS criterion_name,
			r.name AS rank_name, cat.name AS category_name`).
		Joins("JOIN sessions s ON s.id = p.session_id").
		Joins("JOIN criteria c ON c.id = p.criteria_id").
		Joins("JOIN ranks r ON r.id = c.rank_id").
		Joins("JOIN categories cat ON cat.id = c.category_id").
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.status = ?", constants.ProgressPending).
		Order("s.date DESC, s.id DESC, c.id ASC, u.user_name ASC, p.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list progress pending: %w", err)
	}

	out := []dto.PendingSession{}
	for _, r := range rows {
		if n := len(out); n == 0 || out[n-1].SessionID != r.SessionID {
			out = append(out, dto.PendingSession{
				SessionID:   r.SessionID,
				SessionName: r.SessionName,
				SessionDate: r.SessionDate,
				Criteria:    []dto.PendingCriterion{},
			})
		}
		sess := &out[len(out)-1]
		if n := len(sess.Criteria); n == 0 || sess.Criteria[n-1].CriterionID != r.CriterionID {
			sess.Criteria = append(sess.Criteria, dto.PendingCriterion{
				CriterionID:   r.CriterionID,
				CriterionName: r.CriterionName,
				RankName:      r.RankName,
				CategoryName:  r.CategoryName,
				Records:       []dto.PendingRecord{},
			})
		}
		crit := &sess.Criteria[len(sess.Criteria)-1]
		crit.Records = append(crit.Records, dto.PendingRecord{
			ID:         r.ID,
			UserID:     r.UserID,
			UserName:   r.UserName,
			AssessedBy: r.AssessedBy,
			AssessedAt: r.AssessedAt,
		})
	}
	return out, nil
}

// Approve batch approve; id yang bukan PENDING masuk hitungan ignored.
func (s *Store) Approve(ctx context.Context, approver uuid.UUID, ids []uint) (*dto.ApproveResponse, error) {
	ids = uniqueIDs(ids)
	updated, err := s.Complete(ctx, nil, ids, approver, time.Now())
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] approve progress oleh %s: %d diupdate, %d diabaikan", approver, updated, len(ids)-updated)
	return &dto.ApproveResponse{Updated: updated, Ignored: len(ids) - updated}, nil
}

// Reject batch hapus record PENDING.
func (s *Store) Reject(ctx context.Context, actor uuid.UUID, ids []uint) (*dto.RejectResponse, error) {
	ids = uniqueIDs(ids)
	deleted, err := s.DeletePending(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] reject progress oleh %s: %d dihapus, %d diabaikan", actor, deleted, len(ids)-deleted)
	return &dto.RejectResponse{Deleted: deleted, Ignored: len(ids) - deleted}, nil
}

// ListForPlayer riwayat progress satu pemain (pending + completed), urut rank lalu criteria.
func (s *Store) ListForPlayer(ctx context.Context, playerID uuid.UUID) ([]dto.PlayerProgressItem, error) {
	rows := []dto.PlayerProgressItem{}
	if err := s.DB.WithContext(ctx).
		Table("progress_records AS p").
		Select(`p.id AS id, p.criteria_id AS criteria_id, c.name AS criterion_name,
			r.name AS rank_name, cat.name AS category_name, p.status AS status,
			p.session_id AS session_id, p.assessed_at AS assessed_at`).
		Joins("JOIN criteria c ON c.id = p.criteria_id").
		Joins("JOIN ranks r ON r.id = c.rank_id").
		Joins("JOIN categories cat ON cat.id = c.category_id").
		Where("p.user_id = ?", playerID).
		Order("r.level ASC, c.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list progress pemain: %w", err)
	}
	return rows, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := map[uint]bool{}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
