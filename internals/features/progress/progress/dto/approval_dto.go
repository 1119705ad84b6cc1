package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProgressIDsRequest body approve / reject: { "ids": [1, 2, 3] }
type ProgressIDsRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type ApproveResponse struct {
	Updated int `json:"updated"`
	Ignored int `json:"ignored"`
}

type RejectResponse struct {
	Deleted int `json:"deleted"`
	Ignored int `json:"ignored"`
}

type PendingRecord struct {
	ID         uint      `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	AssessedBy uuid.UUID `json:"assessed_by"`
	AssessedAt time.Time `json:"assessed_at"`
}

type PendingCriterion struct {
	CriterionID   uint            `json:"criterion_id"`
	CriterionName string          `json:"criterion_name"`
	RankName      string          `json:"rank_name"`
	CategoryName  string          `json:"category_name"`
	Records       []PendingRecord `json:"records"`
}

// PendingSession satu grup listing approval: sesi → criteria → record.
type PendingSession struct {
	SessionID   uint               `json:"session_id"`
	SessionName string             `json:"session_name"`
	SessionDate time.Time          `json:"session_date"`
	Criteria    []PendingCriterion `json:"criteria"`
}

// PlayerProgressItem satu baris riwayat progress milik pemain.
type PlayerProgressItem struct {
	ID            uint      `json:"id"`
	CriteriaID    uint      `json:"criteria_id"`
	CriterionName string    `json:"criterion_name"`
	RankName      string    `json:"rank_name"`
	CategoryName  string    `json:"category_name"`
	Status        string    `json:"status"`
	SessionID     uint      `json:"session_id"`
	AssessedAt    time.Time `json:"assessed_at"`
}
