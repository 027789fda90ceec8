package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"time-planner/internal/repository"
)

// newTestDB opens a fresh in-memory store with the full schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, repository.Migrate(db))
	return db
}

func testCtx() context.Context { return context.Background() }

func defaultTestSettings() Settings {
	return Settings{
		WakeTime:         "07:00",
		SleepTime:        "23:00",
		SnapMinutes:      15,
		CarryOverEnabled: true,
	}
}

// newTestServices wires the full service stack on one in-memory store.
func newTestServices(t *testing.T) (*ScheduleService, *TaskService, *PlanService, *CarryOverService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	settingsSvc := NewSettingsService(repository.NewSettingsRepository(db), defaultTestSettings())
	planSvc := NewPlanService(repository.NewDayPlanRepository(db), settingsSvc)
	taskSvc := NewTaskService(repository.NewTaskRepository(db), planSvc)
	carrySvc := NewCarryOverService(repository.NewTaskRepository(db), planSvc)
	scheduleSvc := NewScheduleService(repository.NewBlockRepository(db), planSvc)
	return scheduleSvc, taskSvc, planSvc, carrySvc, db
}
