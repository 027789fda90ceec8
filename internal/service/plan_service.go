package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// PlanService manages per-date day plans: lazy creation with default day
// bounds and membership bookkeeping for task and block ids.
type PlanService struct {
	repo     *repository.DayPlanRepository
	settings *SettingsService
}

func NewPlanService(repo *repository.DayPlanRepository, settings *SettingsService) *PlanService {
	return &PlanService{repo: repo, settings: settings}
}

// GetOrCreate returns the plan for a date. A date seen for the first
// time gets a plan with the default wake/sleep times and empty
// membership lists, persisted immediately so the default materializes
// exactly once.
func (s *PlanService) GetOrCreate(ctx context.Context, date string) (*model.DayPlan, error) {
	plan, err := s.repo.Get(ctx, date)
	switch {
	case err == nil:
		return plan, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		settings, err := s.settings.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		plan = &model.DayPlan{
			Date:         date,
			WakeTime:     settings.WakeTime,
			SleepTime:    settings.SleepTime,
			TaskIDs:      model.IDList{},
			TimeBlockIDs: model.IDList{},
		}
		if err := s.repo.Upsert(ctx, plan); err != nil {
			return nil, err
		}
		return plan, nil
	default:
		return nil, fmt.Errorf("load day plan: %w", err)
	}
}

// AddBlock appends a block id to the date's membership list.
func (s *PlanService) AddBlock(ctx context.Context, date, blockID string) error {
	plan, err := s.GetOrCreate(ctx, date)
	if err != nil {
		return err
	}
	if plan.TimeBlockIDs.Contains(blockID) {
		return nil
	}
	plan.TimeBlockIDs = append(plan.TimeBlockIDs, blockID)
	return s.repo.Upsert(ctx, plan)
}

// RemoveBlock drops a block id from the date's membership list.
func (s *PlanService) RemoveBlock(ctx context.Context, date, blockID string) error {
	plan, err := s.GetOrCreate(ctx, date)
	if err != nil {
		return err
	}
	if !plan.TimeBlockIDs.Contains(blockID) {
		return nil
	}
	plan.TimeBlockIDs = plan.TimeBlockIDs.Without(blockID)
	return s.repo.Upsert(ctx, plan)
}

// AddTask appends a task id to the date's membership list.
func (s *PlanService) AddTask(ctx context.Context, date, taskID string) error {
	plan, err := s.GetOrCreate(ctx, date)
	if err != nil {
		return err
	}
	if plan.TaskIDs.Contains(taskID) {
		return nil
	}
	plan.TaskIDs = append(plan.TaskIDs, taskID)
	return s.repo.Upsert(ctx, plan)
}

// RemoveTask drops a task id from the date's membership list.
func (s *PlanService) RemoveTask(ctx context.Context, date, taskID string) error {
	plan, err := s.GetOrCreate(ctx, date)
	if err != nil {
		return err
	}
	if !plan.TaskIDs.Contains(taskID) {
		return nil
	}
	plan.TaskIDs = plan.TaskIDs.Without(taskID)
	return s.repo.Upsert(ctx, plan)
}

// SetDayBounds updates the wake/sleep times of one date.
func (s *PlanService) SetDayBounds(ctx context.Context, date, wake, sleep string) error {
	plan, err := s.GetOrCreate(ctx, date)
	if err != nil {
		return err
	}
	plan.WakeTime = wake
	plan.SleepTime = sleep
	return s.repo.Upsert(ctx, plan)
}
