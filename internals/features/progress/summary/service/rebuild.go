package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	rubricService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/rubric/service"
	"github.com/jgretton/junior-development-programme-sub000/internals/metrics"
)

type RebuildFailure struct {
	UserID uuid.UUID `json:"user_id"`
	Error  string    `json:"error"`
}

// RebuildReport hasil rebuildAll per pemain.
type RebuildReport struct {
	Total      int              `json:"total"`
	Succeeded  int              `json:"succeeded"`
	Failed     []RebuildFailure `json:"failed"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

func (r RebuildReport) OK() bool { return len(r.Failed) == 0 }

// RebuildAll recompute semua user role=player, berurutan, satu transaksi per pemain.
// Gagal di satu pemain dicatat lalu lanjut ke pemain berikutnya.
func (a *Aggregator) RebuildAll(ctx context.Context) (RebuildReport, error) {
	report := RebuildReport{StartedAt: time.Now(), Failed: []RebuildFailure{}}

	ranks, err := a.Rubric.ListRanks(ctx, nil)
	if err != nil {
		return report, err
	}
	if len(ranks) == 0 {
		return report, rubricService.ErrRubricNotConfigured
	}

	ids, err := a.Users.ListPlayerIDs(ctx, nil)
	if err != nil {
		return report, err
	}
	report.Total = len(ids)
	log.Printf("[INFO] 🔁 Rebuild summary untuk %d pemain...", len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now()
			return report, err
		}

		err := a.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, err := a.RecomputeForPlayer(ctx, tx, id)
			return err
		})
		if err != nil {
			report.Failed = append(report.Failed, RebuildFailure{UserID: id, Error: err.Error()})
			continue
		}
		report.Succeeded++
	}

	report.FinishedAt = time.Now()
	metrics.RecordRebuild(len(report.Failed), report.FinishedAt)

	if report.OK() {
		log.Printf("[INFO] ✅ Rebuild selesai: %d/%d pemain", report.Succeeded, report.Total)
	} else {
		log.Printf("[ERROR] ⚠️ Rebuild selesai dengan %d kegagalan dari %d pemain", len(report.Failed), report.Total)
	}
	return report, nil
}
