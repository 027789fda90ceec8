package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"time-planner/internal/model"
)

// taskColumns are the mutable task columns written on upsert. id and
// created_at are deliberately absent so the creation timestamp survives
// repeated saves.
var taskColumns = []string{
	"title", "description", "status", "priority",
	"scheduled_date", "scheduled_time", "estimated_minutes", "sort_order",
	"recurrence_json", "notifications_json",
	"updated_at", "completed_at", "carried_over_from",
}

// TaskRepository persists the task aggregate: a task row plus the full
// set of its subtask rows.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Save writes the whole aggregate atomically: upsert the task row, drop
// every existing subtask row of the task, insert the current subtask
// list. Full replacement means a save can never leave orphaned or
// duplicated subtask rows behind, no matter how often it runs.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *task
		row.Subtasks = nil
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(taskColumns),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert task: %w", err)
		}

		if err := tx.Where("parent_task_id = ?", task.ID).Delete(&model.Subtask{}).Error; err != nil {
			return fmt.Errorf("clear subtasks: %w", err)
		}

		if len(task.Subtasks) == 0 {
			return nil
		}
		subtasks := make([]model.Subtask, len(task.Subtasks))
		copy(subtasks, task.Subtasks)
		for i := range subtasks {
			subtasks[i].TaskID = task.ID
		}
		if err := tx.Create(&subtasks).Error; err != nil {
			return fmt.Errorf("insert subtasks: %w", err)
		}
		return nil
	})
}

// Delete removes the task and its subtasks in one transaction and clears
// the task reference of any time block pointing at it. The schema's
// cascade/set-null rules cover the same ground; doing it here as well
// keeps the contract independent of the storage layer's enforcement.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_task_id = ?", taskID).Delete(&model.Subtask{}).Error; err != nil {
			return fmt.Errorf("delete subtasks: %w", err)
		}
		if err := tx.Model(&model.TimeBlock{}).Where("task_id = ?", taskID).
			Update("task_id", nil).Error; err != nil {
			return fmt.Errorf("clear block references: %w", err)
		}
		if err := tx.Where("id = ?", taskID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}

// FindByID loads one task with its subtasks in stored order.
func (r *TaskRepository) FindByID(ctx context.Context, taskID string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Subtasks", subtaskOrder).
		Where("id = ?", taskID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Exists reports whether a task row with the given id is stored.
func (r *TaskRepository) Exists(ctx context.Context, taskID string) (bool, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Select("id").Where("id = ?", taskID).First(&task).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("find task: %w", err)
	}
}

// LoadAll returns every task with subtasks, manual sort order first and
// creation time breaking ties.
func (r *TaskRepository) LoadAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Subtasks", subtaskOrder).
		Order("sort_order ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByDate returns the tasks scheduled on the given calendar date.
func (r *TaskRepository) ListByDate(ctx context.Context, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Subtasks", subtaskOrder).
		Where("scheduled_date = ?", date).
		Order("sort_order ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOpenBefore returns todo/in-progress tasks scheduled strictly before
// the given date, the candidates for carry-over.
func (r *TaskRepository) ListOpenBefore(ctx context.Context, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Subtasks", subtaskOrder).
		Where("scheduled_date <> '' AND scheduled_date < ? AND status IN ?",
			date, []model.TaskStatus{model.StatusTodo, model.StatusInProgress}).
		Order("scheduled_date ASC, sort_order ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// HasSuccessor reports whether any task was carried over from the given
// one. A task with a successor is never carried again; only the newest
// copy of a chain moves forward.
func (r *TaskRepository) HasSuccessor(ctx context.Context, fromID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("carried_over_from = ?", fromID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count carry-overs: %w", err)
	}
	return count > 0, nil
}

// subtaskOrder keeps subtask lists in insertion order across reloads.
func subtaskOrder(db *gorm.DB) *gorm.DB {
	return db.Order("rowid ASC")
}
