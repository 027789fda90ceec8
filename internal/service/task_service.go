package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title            string
	Description      string
	Priority         int
	ScheduledDate    string // YYYY-MM-DD
	ScheduledTime    *string
	EstimatedMinutes *int
	Recurrence       model.Recurrence
	Notifications    model.NotificationList
	Subtasks         []string // titles, in order
}

// TaskPatch carries optional field updates for a task edit.
type TaskPatch struct {
	Title            *string
	Description      *string
	Priority         *int
	ScheduledDate    *string
	ScheduledTime    *string
	EstimatedMinutes *int
	SortOrder        *int
	Recurrence       *model.Recurrence
	Notifications    *model.NotificationList
}

// TaskService wraps the task aggregate's business logic. Every mutation
// funnels through the repository's atomic save, so a task and its
// subtasks can never be persisted half-updated.
type TaskService struct {
	repo *repository.TaskRepository
	plan *PlanService
}

func NewTaskService(repo *repository.TaskRepository, plan *PlanService) *TaskService {
	return &TaskService{repo: repo, plan: plan}
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	task := &model.Task{
		ID:               uuid.NewString(),
		Title:            input.Title,
		Description:      input.Description,
		Status:           model.StatusTodo,
		Priority:         input.Priority,
		ScheduledDate:    input.ScheduledDate,
		ScheduledTime:    input.ScheduledTime,
		EstimatedMinutes: input.EstimatedMinutes,
		Recurrence:       input.Recurrence,
		Notifications:    input.Notifications,
	}
	for _, title := range input.Subtasks {
		task.Subtasks = append(task.Subtasks, model.Subtask{
			ID:     uuid.NewString(),
			TaskID: task.ID,
			Title:  title,
		})
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}

	if task.ScheduledDate != "" {
		if err := s.plan.AddTask(ctx, task.ScheduledDate, task.ID); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// UpdateTask merges patch into the stored task and saves the aggregate.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	oldDate := task.ScheduledDate
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.ScheduledDate != nil {
		task.ScheduledDate = *patch.ScheduledDate
	}
	if patch.ScheduledTime != nil {
		task.ScheduledTime = patch.ScheduledTime
	}
	if patch.EstimatedMinutes != nil {
		task.EstimatedMinutes = patch.EstimatedMinutes
	}
	if patch.SortOrder != nil {
		task.SortOrder = *patch.SortOrder
	}
	if patch.Recurrence != nil {
		task.Recurrence = *patch.Recurrence
	}
	if patch.Notifications != nil {
		task.Notifications = *patch.Notifications
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}

	if task.ScheduledDate != oldDate {
		if oldDate != "" {
			if err := s.plan.RemoveTask(ctx, oldDate, task.ID); err != nil {
				return nil, err
			}
		}
		if task.ScheduledDate != "" {
			if err := s.plan.AddTask(ctx, task.ScheduledDate, task.ID); err != nil {
				return nil, err
			}
		}
	}
	return task, nil
}

// SetStatus moves the task into the given status, stamping or clearing
// the completion time as appropriate.
func (s *TaskService) SetStatus(ctx context.Context, taskID string, status model.TaskStatus) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Status = status
	if status == model.StatusDone {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task and its subtasks. Time blocks that pointed
// at it survive with their reference cleared.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}
	if task.ScheduledDate != "" {
		return s.plan.RemoveTask(ctx, task.ScheduledDate, taskID)
	}
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	return s.repo.FindByID(ctx, taskID)
}

func (s *TaskService) ListByDate(ctx context.Context, date string) ([]model.Task, error) {
	return s.repo.ListByDate(ctx, date)
}

// AddSubtask appends a subtask and saves the aggregate.
func (s *TaskService) AddSubtask(ctx context.Context, taskID, title string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Subtasks = append(task.Subtasks, model.Subtask{
		ID:     uuid.NewString(),
		TaskID: task.ID,
		Title:  title,
	})
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleSubtask flips one subtask's completed flag. Unknown subtask ids
// are a no-op: the aggregate is saved unchanged.
func (s *TaskService) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			task.Subtasks[i].Completed = !task.Subtasks[i].Completed
			break
		}
	}
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// RemoveSubtask drops one subtask and saves the aggregate.
func (s *TaskService) RemoveSubtask(ctx context.Context, taskID, subtaskID string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	kept := task.Subtasks[:0]
	for _, st := range task.Subtasks {
		if st.ID != subtaskID {
			kept = append(kept, st)
		}
	}
	task.Subtasks = kept
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
