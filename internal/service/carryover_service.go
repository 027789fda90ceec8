package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// CarryOverService rolls incomplete tasks forward: every open task
// scheduled before the target date gets a copy on that date with
// carried_over_from pointing back at the original. The original stays
// where it is, so the history of what slipped is preserved.
type CarryOverService struct {
	repo *repository.TaskRepository
	plan *PlanService
}

func NewCarryOverService(repo *repository.TaskRepository, plan *PlanService) *CarryOverService {
	return &CarryOverService{repo: repo, plan: plan}
}

// Run carries every eligible task over to the given date and returns the
// copies. A task that was already carried over is skipped no matter
// where its copy lives: of a chain of still-open copies only the newest
// one moves forward, and running the job twice on the same day carries
// nothing new.
func (s *CarryOverService) Run(ctx context.Context, date string) ([]model.Task, error) {
	open, err := s.repo.ListOpenBefore(ctx, date)
	if err != nil {
		return nil, err
	}

	var carried []model.Task
	for i := range open {
		orig := open[i]
		carriedAlready, err := s.repo.HasSuccessor(ctx, orig.ID)
		if err != nil {
			return carried, err
		}
		if carriedAlready {
			continue
		}

		from := orig.ID
		clone := model.Task{
			ID:               uuid.NewString(),
			Title:            orig.Title,
			Description:      orig.Description,
			Status:           orig.Status,
			Priority:         orig.Priority,
			ScheduledDate:    date,
			ScheduledTime:    orig.ScheduledTime,
			EstimatedMinutes: orig.EstimatedMinutes,
			SortOrder:        orig.SortOrder,
			Recurrence:       orig.Recurrence,
			Notifications:    orig.Notifications,
			CarriedOverFrom:  &from,
		}
		for _, st := range orig.Subtasks {
			clone.Subtasks = append(clone.Subtasks, model.Subtask{
				ID:        uuid.NewString(),
				TaskID:    clone.ID,
				Title:     st.Title,
				Completed: st.Completed,
			})
		}

		if err := s.repo.Save(ctx, &clone); err != nil {
			return carried, err
		}
		if err := s.plan.AddTask(ctx, date, clone.ID); err != nil {
			return carried, err
		}
		carried = append(carried, clone)
	}
	return carried, nil
}

// RunToday carries open tasks onto today's date.
func (s *CarryOverService) RunToday(ctx context.Context) ([]model.Task, error) {
	return s.Run(ctx, model.FormatDate(time.Now()))
}

// Job adapts Run for the cron scheduler: errors are logged, not returned.
func (s *CarryOverService) Job() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	carried, err := s.RunToday(ctx)
	if err != nil {
		log.Printf("[error] carry-over: %v", err)
		return
	}
	if len(carried) > 0 {
		log.Printf("[info] carried over %d task(s)", len(carried))
	}
}
