package model

import "time"

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
	StatusCancelled  TaskStatus = "cancelled"
)

// Task represents a single item in the planner. A task owns its subtasks:
// they are saved and deleted together as one unit.
type Task struct {
	ID               string     `gorm:"column:id;primaryKey"`
	Title            string     `gorm:"column:title"`
	Description      string     `gorm:"column:description"`
	Status           TaskStatus `gorm:"column:status;default:todo"`
	Priority         int        `gorm:"column:priority;default:0"`
	ScheduledDate    string     `gorm:"column:scheduled_date;index"` // YYYY-MM-DD
	ScheduledTime    *string    `gorm:"column:scheduled_time"`       // HH:MM
	EstimatedMinutes *int       `gorm:"column:estimated_minutes"`
	SortOrder        int        `gorm:"column:sort_order;default:0"`
	Recurrence       Recurrence `gorm:"column:recurrence_json;type:text"`

	Notifications NotificationList `gorm:"column:notifications_json;type:text"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`

	// CarriedOverFrom holds the id of the task this one was rolled over
	// from when an incomplete task is moved to a later date.
	CarriedOverFrom *string `gorm:"column:carried_over_from"`

	Subtasks []Subtask `gorm:"foreignKey:TaskID;references:ID"`
}

func (Task) TableName() string { return "tasks" }

// Open reports whether the task still needs attention.
func (t *Task) Open() bool {
	return t.Status == StatusTodo || t.Status == StatusInProgress
}

// Subtask is a checklist entry owned by exactly one task.
type Subtask struct {
	ID        string `gorm:"column:id;primaryKey"`
	TaskID    string `gorm:"column:parent_task_id;index"`
	Title     string `gorm:"column:title"`
	Completed bool   `gorm:"column:completed"`
}

func (Subtask) TableName() string { return "subtasks" }
