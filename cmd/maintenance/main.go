// Command maintenance tugas operasional di luar jalur request.
//
//	maintenance rebuild            rebuild semua summary pemain
//	maintenance recompute <uuid>   hitung ulang satu pemain
//	maintenance token <email>      access token untuk user (dev / ops)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jgretton/junior-development-programme-sub000/internals/configs"
	database "github.com/jgretton/junior-development-programme-sub000/internals/databases"
	summaryService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
	authService "github.com/jgretton/junior-development-programme-sub000/internals/features/users/auth/service"
	userService "github.com/jgretton/junior-development-programme-sub000/internals/features/users/user/service"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: maintenance rebuild | recompute <user_id> | token <email>")
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	configs.LoadEnv()
	database.ConnectDB()
	agg := summaryService.NewAggregator(database.DB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch flag.Arg(0) {
	case "rebuild":
		report, err := agg.RebuildAll(ctx)
		if err != nil {
			log.Fatalf("❌ Rebuild gagal: %v", err)
		}
		fmt.Printf("rebuild: %d pemain, %d sukses, %d gagal (%s)\n",
			report.Total, report.Succeeded, len(report.Failed), report.FinishedAt.Sub(report.StartedAt))
		for _, f := range report.Failed {
			fmt.Printf("  %s: %s\n", f.UserID, f.Error)
		}
		if !report.OK() {
			os.Exit(1)
		}
	case "recompute":
		if flag.NArg() < 2 {
			flag.Usage()
			os.Exit(2)
		}
		id, err := uuid.Parse(flag.Arg(1))
		if err != nil {
			log.Fatalf("❌ user_id tidak valid: %v", err)
		}
		s, err := agg.RecomputeForPlayer(ctx, nil, id)
		if err != nil {
			log.Fatalf("❌ Recompute gagal: %v", err)
		}
		fmt.Printf("recompute %s: %.2f%% (%d/%d)\n", id, s.OverallPercentage, s.OverallCompleted, s.OverallTotal)
	case "token":
		if flag.NArg() < 2 {
			flag.Usage()
			os.Exit(2)
		}
		u, err := userService.NewDirectory(database.DB).GetByEmail(ctx, flag.Arg(1))
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		tok, err := authService.IssueAccessToken(*u, configs.JWTSecret, 12*time.Hour)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		fmt.Println(tok)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
