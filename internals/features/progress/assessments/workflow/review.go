package workflow

import (
	"github.com/google/uuid"
)

type WarningKind string

const (
	WarnPlayerWithoutAchievement WarningKind = "player_without_achievement"
	WarnCriterionWithoutPlayers  WarningKind = "criterion_without_players"
)

// Warning bersifat advisory; submission tetap boleh dilanjutkan.
type Warning struct {
	Kind        WarningKind `json:"kind"`
	PlayerID    *uuid.UUID  `json:"player_id,omitempty"`
	CriterionID *uint       `json:"criterion_id,omitempty"`
}

type PlayerReview struct {
	PlayerID uuid.UUID `json:"player_id"`
	Achieved []uint    `json:"achieved"`
}

type CriterionReview struct {
	CriterionID      uint        `json:"criterion_id"`
	IsFocus          bool        `json:"is_focus"`
	Players          []uuid.UUID `json:"players"`
	AlreadyCompleted []uuid.UUID `json:"already_completed,omitempty"`
}

type Review struct {
	Players         []PlayerReview    `json:"players"`
	Criteria        []CriterionReview `json:"criteria"`
	Warnings        []Warning         `json:"warnings"`
	PendingToCreate int               `json:"pending_to_create"`
}

func (r Review) HasWarnings() bool { return len(r.Warnings) > 0 }

// BuildReview gabungkan kehadiran + assignment jadi tampilan per pemain & per criteria.
// Pasangan yang sudah COMPLETED tidak dihitung sebagai capaian baru (akan dilewati saat submit).
func BuildReview(
	attending []uuid.UUID,
	criteria []uint,
	focus map[uint]bool,
	assignments map[uint][]uuid.UUID,
	completed Completed,
) Review {
	order := append([]uint(nil), criteria...)
	known := map[uint]bool{}
	for _, id := range order {
		known[id] = true
	}
	var extra []uint
	for id := range assignments {
		if !known[id] {
			extra = append(extra, id)
			known[id] = true
		}
	}
	order = append(order, sortedCriteria(extra)...)

	achievedBy := map[uuid.UUID][]uint{}
	review := Review{
		Players:  []PlayerReview{},
		Criteria: []CriterionReview{},
		Warnings: []Warning{},
	}

	for _, cid := range order {
		cr := CriterionReview{CriterionID: cid, IsFocus: focus[cid], Players: []uuid.UUID{}}
		seen := map[uuid.UUID]bool{}
		for _, pid := range assignments[cid] {
			if seen[pid] {
				continue
			}
			seen[pid] = true
			if completed.Has(cid, pid) {
				cr.AlreadyCompleted = append(cr.AlreadyCompleted, pid)
				continue
			}
			cr.Players = append(cr.Players, pid)
			achievedBy[pid] = append(achievedBy[pid], cid)
			review.PendingToCreate++
		}
		if len(cr.Players) == 0 {
			id := cid
			review.Warnings = append(review.Warnings, Warning{Kind: WarnCriterionWithoutPlayers, CriterionID: &id})
		}
		review.Criteria = append(review.Criteria, cr)
	}

	for _, pid := range attending {
		achieved := achievedBy[pid]
		if achieved == nil {
			achieved = []uint{}
		}
		review.Players = append(review.Players, PlayerReview{PlayerID: pid, Achieved: achieved})
		if len(achieved) == 0 {
			id := pid
			review.Warnings = append(review.Warnings, Warning{Kind: WarnPlayerWithoutAchievement, PlayerID: &id})
		}
	}
	return review
}
