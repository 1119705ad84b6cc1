package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	rubricModel "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/model"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/model"
	userModel "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/model"
)

var ErrSessionNotFound = errors.New("sesi tidak ditemukan")

type NewSession struct {
	Name        string
	Date        time.Time
	FocusAreas  *string
	CriteriaIDs []uint
	CreatedBy   uuid.UUID
}

type SessionCriterion struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	RankID     uint   `json:"rank_id"`
	CategoryID uint   `json:"category_id"`
	IsFocus    bool   `json:"is_focus"`
}

type Attendee struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
}

type SessionDetail struct {
	model.SessionModel
	Criteria  []SessionCriterion `json:"criteria"`
	Attendees []Attendee         `json:"attendees"`
}

type SessionListItem struct {
	model.SessionModel
	CriteriaCount   int `json:"criteria_count"`
	AttendanceCount int `json:"attendance_count"`
	PendingCount    int `json:"pending_count"`
}

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

func (s *Service) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return s.DB.WithContext(ctx)
}

// Create sesi baru + criteria focus-nya.
func (s *Service) Create(ctx context.Context, tx *gorm.DB, in NewSession) (*model.SessionModel, error) {
	row := model.SessionModel{
		Name:       in.Name,
		Date:       in.Date,
		FocusAreas: in.FocusAreas,
		CreatedBy:  in.CreatedBy,
	}
	if err := s.conn(ctx, tx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("simpan sesi: %w", err)
	}
	if err := s.AttachCriteria(ctx, tx, row.ID, in.CriteriaIDs, true); err != nil {
		return nil, err
	}
	return &row, nil
}

// AttachCriteria idempoten; pasangan yang sudah ada tidak diubah (focus tetap focus).
func (s *Service) AttachCriteria(ctx context.Context, tx *gorm.DB, sessionID uint, criteriaIDs []uint, isFocus bool) error {
	if len(criteriaIDs) == 0 {
		return nil
	}
	rows := make([]model.SessionCriterionModel, 0, len(criteriaIDs))
	seen := map[uint]bool{}
	for _, id := range criteriaIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, model.SessionCriterionModel{SessionID: sessionID, CriterionID: id, IsFocus: isFocus})
	}
	if err := s.conn(ctx, tx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("simpan criteria sesi: %w", err)
	}
	return nil
}

// RecordAttendance idempoten.
func (s *Service) RecordAttendance(ctx context.Context, tx *gorm.DB, sessionID uint, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.SessionAttendanceModel, 0, len(userIDs))
	seen := map[uuid.UUID]bool{}
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, model.SessionAttendanceModel{SessionID: sessionID, UserID: id})
	}
	if err := s.conn(ctx, tx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("simpan kehadiran: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, tx *gorm.DB, id uint) (*model.SessionModel, error) {
	var row model.SessionModel
	if err := s.conn(ctx, tx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("ambil sesi %d: %w", id, err)
	}
	return &row, nil
}

// Criteria criteria sesi, focus dulu lalu urut id.
func (s *Service) Criteria(ctx context.Context, tx *gorm.DB, sessionID uint) ([]SessionCriterion, error) {
	var rows []SessionCriterion
	if err := s.conn(ctx, tx).
		Table(rubricModel.CriterionModel{}.TableName()+" AS c").
		Select("c.id AS id, c.name AS name, c.rank_id AS rank_id, c.category_id AS category_id, sc.is_focus AS is_focus").
		Joins("JOIN session_criteria sc ON sc.criterion_id = c.id").
		Where("sc.session_id = ?", sessionID).
		Order("sc.is_focus DESC, c.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("ambil criteria sesi: %w", err)
	}
	return rows, nil
}

func (s *Service) Attendees(ctx context.Context, tx *gorm.DB, sessionID uint) ([]Attendee, error) {
	var rows []Attendee
	if err := s.conn(ctx, tx).
		Table(userModel.UserModel{}.TableName()+" AS u").
		Select("u.id AS id, u.user_name AS user_name").
		Joins("JOIN session_attendances sa ON sa.user_id = u.id").
		Where("sa.session_id = ?", sessionID).
		Order("u.user_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("ambil kehadiran sesi: %w", err)
	}
	return rows, nil
}

func (s *Service) Detail(ctx context.Context, id uint) (*SessionDetail, error) {
	row, err := s.Get(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	criteria, err := s.Criteria(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	attendees, err := s.Attendees(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &SessionDetail{SessionModel: *row, Criteria: criteria, Attendees: attendees}, nil
}

type countRow struct {
	SessionID uint
	Total     int
}

// List sesi terbaru dulu, dengan jumlah criteria / hadir / pending per sesi.
func (s *Service) List(ctx context.Context, offset, limit int) ([]SessionListItem, int64, error) {
	db := s.conn(ctx, nil)

	var total int64
	if err := db.Model(&model.SessionModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("hitung sesi: %w", err)
	}

	var rows []model.SessionModel
	if err := db.Order("date DESC, id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list sesi: %w", err)
	}
	if len(rows) == 0 {
		return []SessionListItem{}, total, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	counts := func(table, extra string, args ...interface{}) (map[uint]int, error) {
		var out []countRow
		q := db.Table(table).
			Select("session_id, COUNT(*) AS total").
			Where("session_id IN ?", ids)
		if extra != "" {
			q = q.Where(extra, args...)
		}
		if err := q.Group("session_id").Scan(&out).Error; err != nil {
			return nil, err
		}
		m := make(map[uint]int, len(out))
		for _, c := range out {
			m[c.SessionID] = c.Total
		}
		return m, nil
	}

	critCount, err := counts("session_criteria", "")
	if err != nil {
		return nil, 0, fmt.Errorf("hitung criteria sesi: %w", err)
	}
	attCount, err := counts("session_attendances", "")
	if err != nil {
		return nil, 0, fmt.Errorf("hitung kehadiran sesi: %w", err)
	}
	pendingCount, err := counts("progress_records", "status = ?", constants.ProgressPending)
	if err != nil {
		return nil, 0, fmt.Errorf("hitung pending sesi: %w", err)
	}

	out := make([]SessionListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, SessionListItem{
			SessionModel:    r,
			CriteriaCount:   critCount[r.ID],
			AttendanceCount: attCount[r.ID],
			PendingCount:    pendingCount[r.ID],
		})
	}
	return out, total, nil
}
