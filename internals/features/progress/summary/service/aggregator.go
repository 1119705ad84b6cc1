package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	rubricModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
	rubricService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/service"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/model"
	userService "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/service"
	"github.com/jgretton/junior-development-programme-sub000/internals/metrics"
)

// Aggregator pemilik tunggal tabel player_progress_summaries.
type Aggregator struct {
	DB     *gorm.DB
	Rubric *rubricService.Store
	Users  *userService.Directory
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{
		DB:     db,
		Rubric: rubricService.NewStore(db),
		Users:  userService.NewDirectory(db),
	}
}

// RecomputeForPlayer hitung ulang summary satu pemain dan upsert barisnya utuh.
// tx nil → dibungkus transaksi sendiri; kalau tx diberikan, ikut transaksi pemanggil.
func (a *Aggregator) RecomputeForPlayer(ctx context.Context, tx *gorm.DB, playerID uuid.UUID) (*model.PlayerProgressSummaryModel, error) {
	if tx == nil {
		var out *model.PlayerProgressSummaryModel
		err := a.DB.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
			s, err := a.RecomputeForPlayer(ctx, inner, playerID)
			out = s
			return err
		})
		return out, err
	}

	start := time.Now()
	summary, err := a.recompute(ctx, tx, playerID)
	metrics.RecordRecompute(err == nil, time.Since(start))
	if err != nil {
		log.Printf("[ERROR] recompute summary %s: %v", playerID, err)
		return nil, err
	}
	return summary, nil
}

// RecomputePlayers satu recompute per pemain unik, urut id supaya deterministik.
func (a *Aggregator) RecomputePlayers(ctx context.Context, tx *gorm.DB, playerIDs []uuid.UUID) error {
	for _, id := range distinctIDs(playerIDs) {
		if _, err := a.RecomputeForPlayer(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

func (a *Aggregator) recompute(ctx context.Context, tx *gorm.DB, playerID uuid.UUID) (*model.PlayerProgressSummaryModel, error) {
	if _, err := a.Users.GetPlayer(ctx, tx, playerID); err != nil {
		return nil, err
	}

	ranks, err := a.Rubric.ListRanks(ctx, tx)
	if err != nil {
		return nil, err
	}
	categories, err := a.Rubric.ListCategories(ctx, tx)
	if err != nil {
		return nil, err
	}
	totals, err := a.Rubric.CriteriaTotals(ctx, tx)
	if err != nil {
		return nil, err
	}
	done, err := a.completedCounts(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	summary, err := BuildSummary(playerID, ranks, categories, totals, done)
	if err != nil {
		return nil, err
	}

	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&summary).Error; err != nil {
		return nil, fmt.Errorf("upsert summary %s: %w", playerID, err)
	}
	return &summary, nil
}

type completedRow struct {
	RankID     uint
	CategoryID uint
	Completed  int
}

// completedCounts tiga query agregasi (per rank, per kategori, per pasangan) + satu count total.
func (a *Aggregator) completedCounts(ctx context.Context, tx *gorm.DB, playerID uuid.UUID) (rubricService.Counts, error) {
	out := rubricService.NewCounts()

	grouped := func(selectCols, groupCols string) ([]completedRow, error) {
		var rows []completedRow
		err := tx.WithContext(ctx).
			Table("progress_records AS pr").
			Select(selectCols+", COUNT(*) AS completed").
			Joins("JOIN criteria c ON c.id = pr.criteria_id").
			Where("pr.user_id = ? AND pr.status = ?", playerID, constants.ProgressCompleted).
			Group(groupCols).
			Scan(&rows).Error
		return rows, err
	}

	byRank, err := grouped("c.rank_id AS rank_id", "c.rank_id")
	if err != nil {
		return out, fmt.Errorf("hitung completed per rank: %w", err)
	}
	for _, r := range byRank {
		out.ByRank[r.RankID] = r.Completed
	}

	byCategory, err := grouped("c.category_id AS category_id", "c.category_id")
	if err != nil {
		return out, fmt.Errorf("hitung completed per kategori: %w", err)
	}
	for _, r := range byCategory {
		out.ByCategory[r.CategoryID] = r.Completed
	}

	byPair, err := grouped("c.category_id AS category_id, c.rank_id AS rank_id", "c.category_id, c.rank_id")
	if err != nil {
		return out, fmt.Errorf("hitung completed per kategori+rank: %w", err)
	}
	for _, r := range byPair {
		out.ByPair[rubricService.PairKey{CategoryID: r.CategoryID, RankID: r.RankID}] = r.Completed
	}

	var all int64
	if err := tx.WithContext(ctx).
		Table("progress_records").
		Where("user_id = ? AND status = ?", playerID, constants.ProgressCompleted).
		Count(&all).Error; err != nil {
		return out, fmt.Errorf("hitung completed: %w", err)
	}
	out.All = int(all)
	return out, nil
}

// BuildSummary fungsi murni: rubric + hitungan completed → baris summary.
// Dipakai oleh recompute reaktif maupun rebuildAll.
func BuildSummary(
	playerID uuid.UUID,
	ranks []rubricModel.RankModel,
	categories []rubricModel.CategoryModel,
	totals rubricService.Counts,
	done rubricService.Counts,
) (model.PlayerProgressSummaryModel, error) {
	if len(ranks) == 0 {
		return model.PlayerProgressSummaryModel{}, rubricService.ErrRubricNotConfigured
	}
	ranks = sortedByLevel(ranks)
	highest := ranks[len(ranks)-1]

	rankProgress := make(map[string]model.RankProgress, len(ranks))
	var current *rubricModel.RankModel
	for i := range ranks {
		r := ranks[i]
		total := totals.ByRank[r.ID]
		completed := done.ByRank[r.ID]
		pct := percentage(completed, total)
		rankProgress[r.Name] = model.RankProgress{
			Completed:  completed,
			Total:      total,
			Percentage: pct,
		}
		if current == nil && pct < 100 {
			current = &ranks[i]
		}
	}
	if current == nil {
		current = &highest
	}

	categoryProgress := make(map[string]model.CategoryProgress, len(categories))
	for _, c := range categories {
		total := totals.ByCategory[c.ID]
		completed := done.ByCategory[c.ID]

		rankName := highest.Name
		for _, r := range ranks {
			key := rubricService.PairKey{CategoryID: c.ID, RankID: r.ID}
			pairTotal := totals.ByPair[key]
			if pairTotal == 0 {
				continue
			}
			if percentage(done.ByPair[key], pairTotal) < 100 {
				rankName = r.Name
				break
			}
		}

		categoryProgress[c.Name] = model.CategoryProgress{
			RankName:   rankName,
			Completed:  completed,
			Total:      total,
			Percentage: percentage(completed, total),
		}
	}

	currentID := current.ID
	return model.PlayerProgressSummaryModel{
		UserID:            playerID,
		CurrentRankID:     &currentID,
		OverallPercentage: overallPercentage(done.All, totals.All),
		OverallCompleted:  done.All,
		OverallTotal:      totals.All,
		RankProgress:      datatypes.NewJSONType(rankProgress),
		CategoryProgress:  datatypes.NewJSONType(categoryProgress),
	}, nil
}

// percentage dibulatkan ke bilangan bulat; 0 kalau total 0.
func percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// overallPercentage dibulatkan 2 desimal.
func overallPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)*10000/float64(total)) / 100
}

func sortedByLevel(ranks []rubricModel.RankModel) []rubricModel.RankModel {
	out := append([]rubricModel.RankModel(nil), ranks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
