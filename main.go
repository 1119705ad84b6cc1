package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"github.com/jgretton/junior-development-programme-sub000/internals/configs"
	database "github.com/jgretton/junior-development-programme-sub000/internals/databases"
	"github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/scheduler"
	summaryService "github.com/jgretton/junior-development-programme-sub000/internals/features/progress/summary/service"
	helper "github.com/jgretton/junior-development-programme-sub000/internals/helpers"
	middlewares "github.com/jgretton/junior-development-programme-sub000/internals/middlewares"
	routes "github.com/jgretton/junior-development-programme-sub000/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnv("AUTO_MIGRATE") == "true" {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Println("✅ Auto migrate selesai")
	}

	// ⏱ scheduler setelah DB siap
	var rebuildScheduler *scheduler.RebuildScheduler
	if configs.SummaryRebuildCron != "" {
		rebuildScheduler = scheduler.NewRebuildScheduler(summaryService.NewAggregator(database.DB), 30*time.Minute)
		if err := rebuildScheduler.Start(configs.SummaryRebuildCron); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if rebuildScheduler != nil {
		rebuildScheduler.Stop()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
