package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"time-planner/internal/config"
	"time-planner/internal/model"
	"time-planner/internal/repository"
	"time-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	planRepo := repository.NewDayPlanRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	settingsSvc := service.NewSettingsService(settingsRepo, service.Settings{
		WakeTime:         cfg.WakeTime,
		SleepTime:        cfg.SleepTime,
		SnapMinutes:      cfg.SnapMinutes,
		CarryOverEnabled: true,
	})
	planSvc := service.NewPlanService(planRepo, settingsSvc)
	taskSvc := service.NewTaskService(taskRepo, planSvc)
	templateSvc := service.NewTemplateService(templateRepo)
	carryOverSvc := service.NewCarryOverService(taskRepo, planSvc)
	scheduleSvc := service.NewScheduleService(blockRepo, planSvc)

	if err := templateSvc.EnsureDefaults(ctx); err != nil {
		log.Fatalf("seed templates: %v", err)
	}

	today := model.FormatDate(time.Now())
	plan, blocks, err := scheduleSvc.LoadDay(ctx, today)
	if err != nil {
		log.Fatalf("load day: %v", err)
	}
	tasks, err := taskSvc.ListByDate(ctx, today)
	if err != nil {
		log.Fatalf("load tasks: %v", err)
	}
	log.Printf("[info] day %s loaded: %d block(s), %d task(s), wake %s sleep %s",
		plan.Date, len(blocks), len(tasks), plan.WakeTime, plan.SleepTime)

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.CarryOverAt != "" {
		settings, err := settingsSvc.Load(ctx)
		if err != nil {
			log.Fatalf("settings: %v", err)
		}
		if settings.CarryOverEnabled {
			if _, err := scheduler.ScheduleDaily(cfg.CarryOverAt, carryOverSvc.Job); err != nil {
				log.Fatalf("schedule carry-over: %v", err)
			}
			scheduler.Start()
			defer scheduler.Stop()
		}
	}

	log.Println("[info] time planner started")
	<-ctx.Done()
	scheduleSvc.Close()
	log.Println("[info] shutdown complete")
}
