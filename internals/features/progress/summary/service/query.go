package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/model"
)

var ErrSummaryNotFound = errors.New("summary pemain belum ada")

// SummaryView summary + nama pemain untuk listing/laporan.
type SummaryView struct {
	model.PlayerProgressSummaryModel
	UserName string `json:"user_name"`
}

func (a *Aggregator) Get(ctx context.Context, playerID uuid.UUID) (*model.PlayerProgressSummaryModel, error) {
	var s model.PlayerProgressSummaryModel
	if err := a.DB.WithContext(ctx).Where("user_id = ?", playerID).Take(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("ambil summary %s: %w", playerID, err)
	}
	return &s, nil
}

// GetOrCompute pemain yang belum punya baris summary dihitung saat itu juga
// (semua nol kalau belum ada record), lalu barisnya disimpan.
func (a *Aggregator) GetOrCompute(ctx context.Context, playerID uuid.UUID) (*model.PlayerProgressSummaryModel, error) {
	s, err := a.Get(ctx, playerID)
	if errors.Is(err, ErrSummaryNotFound) {
		return a.RecomputeForPlayer(ctx, nil, playerID)
	}
	return s, err
}

// List summary urut persentase turun; limit <= 0 berarti semua.
func (a *Aggregator) List(ctx context.Context, offset, limit int) ([]SummaryView, int64, error) {
	db := a.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&model.PlayerProgressSummaryModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("hitung summary: %w", err)
	}

	q := db.Order("overall_percentage DESC, user_id ASC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	var rows []model.PlayerProgressSummaryModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list summary: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	names, err := a.Users.NamesByID(ctx, nil, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]SummaryView, 0, len(rows))
	for _, r := range rows {
		out = append(out, SummaryView{PlayerProgressSummaryModel: r, UserName: names[r.UserID]})
	}
	return out, total, nil
}
