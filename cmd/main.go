package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"github.com/samxiao0/campus-cron/bot"
	"github.com/samxiao0/campus-cron/config"
	"github.com/samxiao0/campus-cron/database"
	"github.com/samxiao0/campus-cron/routes"
	"github.com/samxiao0/campus-cron/services"
	"github.com/samxiao0/campus-cron/stats"
)

func main() {
	cfg := config.Load()

	// ถ้า DB ยังไม่ขึ้น โปรแกรมจะ error ทันที (early fail)
	kv, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

	svc := services.NewTracker(kv, cfg.StateKey, services.WithProjection(stats.ProjectionConfig{
		SchoolDays:      cfg.ProjectionSchoolDays,
		MonthSchoolDays: cfg.ProjectionMonthDays,
		Targets:         cfg.ProjectionTargets,
	}))
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	err = svc.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var backups *cron.Cron
	if cfg.BackupCron != "" {
		if backups, err = services.StartBackups(svc, cfg.BackupCron, cfg.BackupDir); err != nil {
			log.Fatal(err)
		}
	}

	if cfg.TelegramToken != "" {
		go func() {
			if err := bot.New(svc).Start(ctx, cfg.TelegramToken); err != nil {
				log.Printf("[bot] %v", err)
			}
		}()
	}

	e := routes.New(svc)
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("server listening at %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	services.StopBackups(shutdownCtx, backups)
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
