package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
)

var (
	// ErrRubricNotConfigured dikembalikan saat belum ada rank sama sekali.
	ErrRubricNotConfigured = errors.New("rubric belum dikonfigurasi: tidak ada rank")
	ErrRankNotFound        = errors.New("rank tidak ditemukan")
	ErrCategoryNotFound    = errors.New("kategori tidak ditemukan")
)

// PairKey kunci (category_id, rank_id) untuk hitungan per sel rubric.
type PairKey struct {
	CategoryID uint
	RankID     uint
}

// Counts hitungan per rank, per kategori, dan per (kategori, rank).
// Dipakai untuk total criteria maupun jumlah record completed.
type Counts struct {
	All        int
	ByRank     map[uint]int
	ByCategory map[uint]int
	ByPair     map[PairKey]int
}

func NewCounts() Counts {
	return Counts{
		ByRank:     map[uint]int{},
		ByCategory: map[uint]int{},
		ByPair:     map[PairKey]int{},
	}
}

type CriteriaFilter struct {
	RankID     *uint
	CategoryID *uint
}

// Store akses read-mostly ke ranks / categories / criteria.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return s.DB.WithContext(ctx)
}

// ListRanks urut level naik.
func (s *Store) ListRanks(ctx context.Context, tx *gorm.DB) ([]model.RankModel, error) {
	var ranks []model.RankModel
	if err := s.conn(ctx, tx).Order("level ASC").Find(&ranks).Error; err != nil {
		return nil, fmt.Errorf("list ranks: %w", err)
	}
	return ranks, nil
}

func (s *Store) ListCategories(ctx context.Context, tx *gorm.DB) ([]model.CategoryModel, error) {
	var cats []model.CategoryModel
	if err := s.conn(ctx, tx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *Store) ListCriteria(ctx context.Context, tx *gorm.DB, f CriteriaFilter) ([]model.CriterionModel, error) {
	q := s.conn(ctx, tx).Model(&model.CriterionModel{})
	if f.RankID != nil {
		q = q.Where("rank_id = ?", *f.RankID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	var rows []model.CriterionModel
	if err := q.Order("rank_id ASC, category_id ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	return rows, nil
}

// CriteriaByIDs map id → criteria; id yang tidak ada tidak muncul di map.
func (s *Store) CriteriaByIDs(ctx context.Context, tx *gorm.DB, ids []uint) (map[uint]model.CriterionModel, error) {
	out := make(map[uint]model.CriterionModel, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.CriterionModel
	if err := s.conn(ctx, tx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("ambil criteria: %w", err)
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

// MissingCriteria id dari input yang tidak ada di tabel criteria (urut naik).
func (s *Store) MissingCriteria(ctx context.Context, tx *gorm.DB, ids []uint) ([]uint, error) {
	found, err := s.CriteriaByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	var missing []uint
	seen := map[uint]bool{}
	for _, id := range ids {
		if _, ok := found[id]; !ok && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
}

type groupedCount struct {
	CategoryID uint
	RankID     uint
	Total      int
}

// CriteriaTotals hitungan criteria dalam satu query GROUP BY (category_id, rank_id);
// total per rank / kategori diturunkan dari hasil yang sama.
func (s *Store) CriteriaTotals(ctx context.Context, tx *gorm.DB) (Counts, error) {
	var rows []groupedCount
	if err := s.conn(ctx, tx).
		Model(&model.CriterionModel{}).
		Select("category_id, rank_id, COUNT(*) AS total").
		Group("category_id, rank_id").
		Scan(&rows).Error; err != nil {
		return Counts{}, fmt.Errorf("hitung total criteria: %w", err)
	}

	t := NewCounts()
	for _, r := range rows {
		t.All += r.Total
		t.ByRank[r.RankID] += r.Total
		t.ByCategory[r.CategoryID] += r.Total
		t.ByPair[PairKey{CategoryID: r.CategoryID, RankID: r.RankID}] += r.Total
	}
	return t, nil
}

/* ===================== Setup (admin) ===================== */

func (s *Store) CreateRanks(ctx context.Context, ranks []model.RankModel) error {
	if err := s.conn(ctx, nil).Create(&ranks).Error; err != nil {
		return fmt.Errorf("simpan ranks: %w", err)
	}
	return nil
}

func (s *Store) CreateCategories(ctx context.Context, cats []model.CategoryModel) error {
	if err := s.conn(ctx, nil).Create(&cats).Error; err != nil {
		return fmt.Errorf("simpan categories: %w", err)
	}
	return nil
}

// CreateCriteria validasi rank_id / category_id dulu, lalu batch insert dalam satu transaksi.
func (s *Store) CreateCriteria(ctx context.Context, rows []model.CriterionModel) error {
	return s.conn(ctx, nil).Transaction(func(tx *gorm.DB) error {
		rankIDs := map[uint]struct{}{}
		catIDs := map[uint]struct{}{}
		for _, r := range rows {
			rankIDs[r.RankID] = struct{}{}
			catIDs[r.CategoryID] = struct{}{}
		}

		var rankCount, catCount int64
		if err := tx.Model(&model.RankModel{}).Where("id IN ?", keys(rankIDs)).Count(&rankCount).Error; err != nil {
			return fmt.Errorf("cek ranks: %w", err)
		}
		if int(rankCount) != len(rankIDs) {
			return ErrRankNotFound
		}
		if err := tx.Model(&model.CategoryModel{}).Where("id IN ?", keys(catIDs)).Count(&catCount).Error; err != nil {
			return fmt.Errorf("cek categories: %w", err)
		}
		if int(catCount) != len(catIDs) {
			return ErrCategoryNotFound
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("simpan criteria: %w", err)
		}
		return nil
	})
}

func keys(m map[uint]struct{}) []uint {
	out := make([]uint, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
