package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgretton/junior-development-programme-sub000/internals/constants"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/assessments/dto"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/assessments/workflow"
	progressService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/progress/service"
	rubricService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/service"
	sessionService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/sessions/service"
	summaryService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
	userService "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
)

// Service endpoint penilaian sesi (submit, review, assessment sheet).
type Service struct {
	DB       *gorm.DB
	Sessions *sessionService.Service
	Rubric   *rubricService.Store
	Users    *userService.Directory
	Progress *progressService.Store
	Now      func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:       db,
		Sessions: sessionService.NewService(db),
		Rubric:   rubricService.NewStore(db),
		Users:    userService.NewDirectory(db),
		Progress: progressService.NewStore(db, summaryService.NewAggregator(db)),
		Now:      time.Now,
	}
}

// plan hasil validasi submission; semua id sudah dicek ada.
type plan struct {
	sessionID   uint
	newSession  *sessionService.NewSession
	attending   []uuid.UUID
	focus       map[uint]bool
	criteria    []uint
	assignments map[uint][]uuid.UUID
}

// pairs urut criteria lalu urutan kehadiran, duplikat dibuang.
func (p *plan) pairs() []progressService.Pair {
	order := map[uuid.UUID]int{}
	for i, id := range p.attending {
		order[id] = i
	}
	cids := make([]uint, 0, len(p.assignments))
	for cid := range p.assignments {
		cids = append(cids, cid)
	}
	sort.Slice(cids, func(i, j int) bool { return cids[i] < cids[j] })

	var out []progressService.Pair
	for _, cid := range cids {
		players := append([]uuid.UUID(nil), p.assignments[cid]...)
		sort.SliceStable(players, func(i, j int) bool { return order[players[i]] < order[players[j]] })
		seen := map[uuid.UUID]bool{}
		for _, pid := range players {
			if seen[pid] {
				continue
			}
			seen[pid] = true
			out = append(out, progressService.Pair{UserID: pid, CriteriaID: cid})
		}
	}
	return out
}

func requireCoach(actor helper.Actor) error {
	if !constants.HasRole(actor.Role, constants.CoachAndAbove) {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorCoach("penilaian"))
	}
	return nil
}

// Submit simpan hasil penilaian: sesi (baru / lama), kehadiran, lalu satu record
// PENDING per pasangan. Pasangan yang sudah punya record dihitung sebagai skipped.
func (s *Service) Submit(ctx context.Context, actor helper.Actor, req dto.SubmitAssessmentRequest) (*dto.SubmitAssessmentResponse, error) {
	if err := requireCoach(actor); err != nil {
		return nil, err
	}
	if ve := helper.ValidateStruct(req); ve != nil {
		return nil, ve
	}

	var out dto.SubmitAssessmentResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.prepare(ctx, tx, actor, req)
		if err != nil {
			return err
		}

		if p.newSession != nil {
			row, err := s.Sessions.Create(ctx, tx, *p.newSession)
			if err != nil {
				return err
			}
			p.sessionID = row.ID
		}
		if err := s.Sessions.RecordAttendance(ctx, tx, p.sessionID, p.attending); err != nil {
			return err
		}

		var extra []uint
		for cid := range p.assignments {
			if !p.focus[cid] {
				extra = append(extra, cid)
			}
		}
		sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
		if err := s.Sessions.AttachCriteria(ctx, tx, p.sessionID, extra, false); err != nil {
			return err
		}

		pairs := p.pairs()
		created, err := s.Progress.CreatePending(ctx, tx, p.sessionID, actor.ID, pairs, s.Now())
		if err != nil {
			return err
		}
		out = dto.SubmitAssessmentResponse{
			SessionID: p.sessionID,
			Created:   created,
			Skipped:   len(pairs) - created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] assessment sesi %d oleh %s: %d dibuat, %d dilewati", out.SessionID, actor.ID, out.Created, out.Skipped)
	return &out, nil
}

// Review preview state Reviewing tanpa menulis apa pun.
func (s *Service) Review(ctx context.Context, actor helper.Actor, req dto.SubmitAssessmentRequest) (*workflow.Review, error) {
	if err := requireCoach(actor); err != nil {
		return nil, err
	}
	if ve := helper.ValidateStruct(req); ve != nil {
		return nil, ve
	}
	p, err := s.prepare(ctx, nil, actor, req)
	if err != nil {
		return nil, err
	}

	ids := append([]uint(nil), p.criteria...)
	for cid := range p.assignments {
		ids = append(ids, cid)
	}
	completed, err := s.Progress.CompletedCriteria(ctx, nil, ids, p.attending)
	if err != nil {
		return nil, err
	}
	review := workflow.BuildReview(p.attending, p.criteria, p.focus, p.assignments, workflow.Completed(completed))
	return &review, nil
}

// Sheet data penilaian sesi yang sudah ada: per criteria, siapa yang sudah COMPLETED
// dan siapa yang masih eligible di antara pemain yang hadir.
func (s *Service) Sheet(ctx context.Context, sessionID uint) (*dto.AssessmentSheetResponse, error) {
	if _, err := s.Sessions.Get(ctx, nil, sessionID); err != nil {
		return nil, err
	}
	criteria, err := s.Sessions.Criteria(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.Sessions.Attendees(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}

	players := make([]uuid.UUID, 0, len(attendees))
	for _, a := range attendees {
		players = append(players, a.ID)
	}
	cids := make([]uint, 0, len(criteria))
	for _, c := range criteria {
		cids = append(cids, c.ID)
	}
	completed, err := s.Progress.CompletedCriteria(ctx, nil, cids, players)
	if err != nil {
		return nil, err
	}

	out := &dto.AssessmentSheetResponse{
		SessionID: sessionID,
		Players:   players,
		Criteria:  make([]dto.SheetCriterion, 0, len(criteria)),
	}
	for _, c := range criteria {
		sc := dto.SheetCriterion{
			CriterionID:      c.ID,
			Name:             c.Name,
			RankID:           c.RankID,
			CategoryID:       c.CategoryID,
			IsFocus:          c.IsFocus,
			AlreadyCompleted: []uuid.UUID{},
			Eligible:         []uuid.UUID{},
		}
		for _, pid := range players {
			if completed[c.ID][pid] {
				sc.AlreadyCompleted = append(sc.AlreadyCompleted, pid)
			} else {
				sc.Eligible = append(sc.Eligible, pid)
			}
		}
		out.Criteria = append(out.Criteria, sc)
	}
	return out, nil
}

// prepare validasi referensi submission. Semua pesan dikumpulkan dulu baru dikembalikan
// sebagai satu ValidationError, sebelum ada tulis ke DB.
func (s *Service) prepare(ctx context.Context, tx *gorm.DB, actor helper.Actor, req dto.SubmitAssessmentRequest) (*plan, error) {
	ve := helper.NewValidationError()
	p := &plan{
		focus:       map[uint]bool{},
		assignments: map[uint][]uuid.UUID{},
	}

	// kehadiran
	seen := map[uuid.UUID]bool{}
	for _, id := range req.AttendingPlayers {
		if !seen[id] {
			seen[id] = true
			p.attending = append(p.attending, id)
		}
	}
	players, err := s.Users.FindPlayers(ctx, tx, p.attending)
	if err != nil {
		return nil, err
	}
	for _, id := range p.attending {
		if _, ok := players[id]; !ok {
			ve.Add("attending_players", "pemain %s tidak ditemukan atau bukan player", id)
		}
	}

	// sesi
	switch {
	case req.SessionID != nil:
		if _, err := s.Sessions.Get(ctx, tx, *req.SessionID); err != nil {
			if !errors.Is(err, sessionService.ErrSessionNotFound) {
				return nil, err
			}
			ve.Add("session_id", "sesi %d tidak ditemukan", *req.SessionID)
		} else {
			p.sessionID = *req.SessionID
			existing, err := s.Sessions.Criteria(ctx, tx, p.sessionID)
			if err != nil {
				return nil, err
			}
			for _, c := range existing {
				p.criteria = append(p.criteria, c.ID)
				if c.IsFocus {
					p.focus[c.ID] = true
				}
			}
		}
	case req.Session != nil:
		date, err := req.Session.ParsedDate()
		if err != nil {
			ve.Add("session.date", "format tanggal harus %s", dto.DateLayout)
		}
		ids := uniqueUints(req.Session.CriteriaIDs)
		missing, err := s.Rubric.MissingCriteria(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range missing {
			ve.Add("session.criteria_ids", "criteria %d tidak ditemukan", id)
		}
		for _, id := range ids {
			p.focus[id] = true
		}
		p.criteria = ids
		p.newSession = &sessionService.NewSession{
			Name:        req.Session.Name,
			Date:        date,
			FocusAreas:  req.Session.FocusAreas,
			CriteriaIDs: ids,
			CreatedBy:   actor.ID,
		}
	}

	// assignment
	cids := make([]uint, 0, len(req.Assignments))
	for cid := range req.Assignments {
		cids = append(cids, cid)
	}
	sort.Slice(cids, func(i, j int) bool { return cids[i] < cids[j] })
	missing, err := s.Rubric.MissingCriteria(ctx, tx, cids)
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		ve.Add(fmt.Sprintf("assignments.%d", id), "criteria %d tidak ditemukan", id)
	}
	for _, cid := range cids {
		field := fmt.Sprintf("assignments.%d", cid)
		for _, pid := range req.Assignments[cid] {
			if !seen[pid] {
				ve.Add(field, "pemain %s tidak hadir di sesi", pid)
			}
		}
		if len(req.Assignments[cid]) > 0 {
			p.assignments[cid] = req.Assignments[cid]
		}
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func uniqueUints(in []uint) []uint {
	seen := map[uint]bool{}
	out := make([]uint, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
