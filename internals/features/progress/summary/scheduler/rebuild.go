package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
)

// Rebuilder bagian Aggregator yang dipakai scheduler.
type Rebuilder interface {
	RebuildAll(ctx context.Context) (service.RebuildReport, error)
}

// RebuildScheduler jalankan RebuildAll berkala sesuai ekspresi cron.
// Satu run dalam satu waktu; run berikutnya dilewati kalau yang lama belum selesai.
type RebuildScheduler struct {
	scheduler *gocron.Scheduler
	rebuilder Rebuilder
	timeout   time.Duration
}

func NewRebuildScheduler(rebuilder Rebuilder, timeout time.Duration) *RebuildScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &RebuildScheduler{scheduler: s, rebuilder: rebuilder, timeout: timeout}
}

// Start daftarkan job lalu jalan async. cronExpr 5 field, mis. "0 3 * * *".
func (s *RebuildScheduler) Start(cronExpr string) error {
	if _, err := s.scheduler.Cron(cronExpr).Do(s.run); err != nil {
		return fmt.Errorf("jadwal rebuild summary %q: %w", cronExpr, err)
	}
	s.scheduler.StartAsync()
	log.Printf("[INFO] Rebuild summary terjadwal: %s", cronExpr)
	return nil
}

func (s *RebuildScheduler) Stop() {
	s.scheduler.Stop()
}

func (s *RebuildScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log.Println("[INFO] Rebuild summary terjadwal dimulai")
	report, err := s.rebuilder.RebuildAll(ctx)
	if err != nil {
		log.Printf("[ERROR] Rebuild summary terjadwal gagal: %v", err)
		return
	}
	log.Printf("[INFO] Rebuild summary selesai: %d pemain, %d sukses, %d gagal",
		report.Total, report.Succeeded, len(report.Failed))
	for _, f := range report.Failed {
		log.Printf("[ERROR] rebuild %s: %s", f.UserID, f.Error)
	}
}
