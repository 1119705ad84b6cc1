package dto

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// NewSessionRequest field sesi baru kalau session_id tidak dikirim.
type NewSessionRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	FocusAreas  *string `json:"focus_areas" validate:"omitempty,max=2000"`
	CriteriaIDs []uint  `json:"criteria_ids" validate:"omitempty,dive,gt=0"`
}

func (r NewSessionRequest) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// SubmitAssessmentRequest payload terminal dari state Submitted.
//
//	{
//	  "session_id": 12,                      // atau "session": {...}
//	  "attending_players": ["uuid", ...],
//	  "assignments": {"5": ["uuid", ...]}
//	}
type SubmitAssessmentRequest struct {
	SessionID        *uint                `json:"session_id" validate:"omitempty,gt=0"`
	Session          *NewSessionRequest   `json:"session" validate:"required_without=SessionID,omitempty"`
	AttendingPlayers []uuid.UUID          `json:"attending_players" validate:"required,min=1"`
	Assignments      map[uint][]uuid.UUID `json:"assignments"`
}

type SubmitAssessmentResponse struct {
	SessionID uint `json:"session_id"`
	Created   int  `json:"created"`
	Skipped   int  `json:"skipped"`
}

type SheetCriterion struct {
	CriterionID      uint        `json:"criterion_id"`
	Name             string      `json:"name"`
	RankID           uint        `json:"rank_id"`
	CategoryID       uint        `json:"category_id"`
	IsFocus          bool        `json:"is_focus"`
	AlreadyCompleted []uuid.UUID `json:"already_completed"`
	Eligible         []uuid.UUID `json:"eligible"`
}

// AssessmentSheetResponse data untuk state AssessingCriteria dari sesi yang sudah ada.
type AssessmentSheetResponse struct {
	SessionID uint             `json:"session_id"`
	Players   []uuid.UUID      `json:"players"`
	Criteria  []SheetCriterion `json:"criteria"`
}
