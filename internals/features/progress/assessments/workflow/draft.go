// Package workflow state machine penilaian sesi di sisi coach:
// SelectingAttendance → AssessingCriteria → Reviewing → Submitted.
// Server hanya menerima submission akhir; Draft dipakai untuk preview review dan test.
package workflow

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type State int

const (
	SelectingAttendance State = iota
	AssessingCriteria
	Reviewing
	Submitted
)

func (s State) String() string {
	switch s {
	case SelectingAttendance:
		return "selecting_attendance"
	case AssessingCriteria:
		return "assessing_criteria"
	case Reviewing:
		return "reviewing"
	case Submitted:
		return "submitted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	ErrNoAttendance      = errors.New("minimal satu pemain hadir")
	ErrInvalidTransition = errors.New("transisi state tidak valid")
	ErrNotAttending      = errors.New("pemain tidak hadir di sesi")
	ErrAlreadyCompleted  = errors.New("pemain sudah menyelesaikan criteria ini")
	ErrUnknownCriterion  = errors.New("criteria tidak ada di sesi")
	ErrAlreadySubmitted  = errors.New("penilaian sudah disubmit")
)

// Completed lookup criteria → pemain yang sudah COMPLETED.
type Completed map[uint]map[uuid.UUID]bool

func (c Completed) Has(criterionID uint, playerID uuid.UUID) bool {
	return c[criterionID][playerID]
}

// Submission payload terminal yang dikirim ke server.
type Submission struct {
	AttendingPlayers []uuid.UUID          `json:"attending_players"`
	Assignments      map[uint][]uuid.UUID `json:"assignments"`
}

// Draft state penilaian satu sesi. Tidak thread-safe.
type Draft struct {
	state     State
	attending []uuid.UUID
	present   map[uuid.UUID]bool
	criteria  []uint
	focus     map[uint]bool
	completed Completed
	achieved  map[uint]map[uuid.UUID]bool
}

// NewDraft criteria focus sesi + data completed untuk guard eligibility.
func NewDraft(focusCriteria []uint, completed Completed) *Draft {
	d := &Draft{
		state:     SelectingAttendance,
		present:   map[uuid.UUID]bool{},
		focus:     map[uint]bool{},
		completed: completed,
		achieved:  map[uint]map[uuid.UUID]bool{},
	}
	if d.completed == nil {
		d.completed = Completed{}
	}
	for _, id := range focusCriteria {
		if !d.focus[id] {
			d.focus[id] = true
			d.criteria = append(d.criteria, id)
		}
	}
	return d
}

func (d *Draft) State() State { return d.state }

func (d *Draft) Attending() []uuid.UUID { return append([]uuid.UUID(nil), d.attending...) }

func (d *Draft) SetAttendance(playerID uuid.UUID, present bool) error {
	if d.state != SelectingAttendance {
		return ErrInvalidTransition
	}
	switch {
	case present && !d.present[playerID]:
		d.present[playerID] = true
		d.attending = append(d.attending, playerID)
	case !present && d.present[playerID]:
		delete(d.present, playerID)
		for i, id := range d.attending {
			if id == playerID {
				d.attending = append(d.attending[:i], d.attending[i+1:]...)
				break
			}
		}
		for _, set := range d.achieved {
			delete(set, playerID)
		}
	}
	return nil
}

// StartAssessing SelectingAttendance → AssessingCriteria; butuh minimal satu pemain hadir.
func (d *Draft) StartAssessing() error {
	if d.state != SelectingAttendance {
		return ErrInvalidTransition
	}
	if len(d.attending) == 0 {
		return ErrNoAttendance
	}
	d.state = AssessingCriteria
	return nil
}

// BackToAttendance boleh dari AssessingCriteria atau Reviewing.
func (d *Draft) BackToAttendance() error {
	if d.state != AssessingCriteria && d.state != Reviewing {
		return ErrInvalidTransition
	}
	d.state = SelectingAttendance
	return nil
}

// AddCriterion criteria tambahan (non-focus) yang dinilai ad hoc.
func (d *Draft) AddCriterion(criterionID uint) error {
	if d.state != AssessingCriteria {
		return ErrInvalidTransition
	}
	for _, id := range d.criteria {
		if id == criterionID {
			return nil
		}
	}
	d.criteria = append(d.criteria, criterionID)
	return nil
}

// Eligible pemain hadir dan belum COMPLETED untuk criteria ini.
func (d *Draft) Eligible(criterionID uint, playerID uuid.UUID) bool {
	return d.present[playerID] && !d.completed.Has(criterionID, playerID)
}

func (d *Draft) SetAchieved(criterionID uint, playerID uuid.UUID, achieved bool) error {
	if d.state != AssessingCriteria {
		return ErrInvalidTransition
	}
	if !d.hasCriterion(criterionID) {
		return ErrUnknownCriterion
	}
	if !achieved {
		delete(d.achieved[criterionID], playerID)
		return nil
	}
	if !d.present[playerID] {
		return ErrNotAttending
	}
	if d.completed.Has(criterionID, playerID) {
		return ErrAlreadyCompleted
	}
	if d.achieved[criterionID] == nil {
		d.achieved[criterionID] = map[uuid.UUID]bool{}
	}
	d.achieved[criterionID][playerID] = true
	return nil
}

// StartReview AssessingCriteria → Reviewing. Warning tidak memblokir.
func (d *Draft) StartReview() (Review, error) {
	if d.state != AssessingCriteria {
		return Review{}, ErrInvalidTransition
	}
	d.state = Reviewing
	return d.Review(), nil
}

func (d *Draft) BackToCriteria() error {
	if d.state != Reviewing {
		return ErrInvalidTransition
	}
	d.state = AssessingCriteria
	return nil
}

// Submit Reviewing → Submitted; hanya criteria yang punya pemain yang ikut dikirim.
func (d *Draft) Submit() (Submission, error) {
	switch d.state {
	case Submitted:
		return Submission{}, ErrAlreadySubmitted
	case Reviewing:
	default:
		return Submission{}, ErrInvalidTransition
	}
	d.state = Submitted
	return d.Submission(), nil
}

func (d *Draft) Submission() Submission {
	out := Submission{
		AttendingPlayers: d.Attending(),
		Assignments:      map[uint][]uuid.UUID{},
	}
	for _, cid := range d.criteria {
		players := d.playersFor(cid)
		if len(players) > 0 {
			out.Assignments[cid] = players
		}
	}
	return out
}

func (d *Draft) Review() Review {
	return BuildReview(d.attending, d.criteria, d.focus, d.Submission().Assignments, d.completed)
}

func (d *Draft) hasCriterion(id uint) bool {
	for _, c := range d.criteria {
		if c == id {
			return true
		}
	}
	return false
}

// playersFor urut sesuai urutan kehadiran supaya stabil.
func (d *Draft) playersFor(criterionID uint) []uuid.UUID {
	set := d.achieved[criterionID]
	var out []uuid.UUID
	for _, id := range d.attending {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}

func sortedCriteria(ids []uint) []uint {
	out := append([]uint(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
