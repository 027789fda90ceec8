package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/model"
)

func sampleTask(id string, subtasks ...string) *model.Task {
	task := &model.Task{
		ID:            id,
		Title:         "write report",
		Description:   "quarterly numbers",
		Status:        model.StatusTodo,
		Priority:      2,
		ScheduledDate: "2026-03-10",
	}
	for i, title := range subtasks {
		task.Subtasks = append(task.Subtasks, model.Subtask{
			ID:     id + "-st" + string(rune('a'+i)),
			TaskID: id,
			Title:  title,
		})
	}
	return task
}

func TestTaskSaveLoadRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := testCtx()

	task := sampleTask("t1", "outline", "draft", "review")
	require.NoError(t, repo.Save(ctx, task))

	// Saving repeatedly must not duplicate subtask rows: every save
	// replaces the full set.
	task.Title = "write report v2"
	require.NoError(t, repo.Save(ctx, task))
	require.NoError(t, repo.Save(ctx, task))

	loaded, err := repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "write report v2", loaded.Title)
	require.Len(t, loaded.Subtasks, 3)
	assert.Equal(t, "outline", loaded.Subtasks[0].Title)
	assert.Equal(t, "draft", loaded.Subtasks[1].Title)
	assert.Equal(t, "review", loaded.Subtasks[2].Title)

	var subtaskRows int64
	require.NoError(t, db.Model(&model.Subtask{}).Count(&subtaskRows).Error)
	assert.EqualValues(t, 3, subtaskRows)
}

func TestTaskSavePreservesCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := testCtx()

	task := sampleTask("t1")
	require.NoError(t, repo.Save(ctx, task))
	created := task.CreatedAt

	time.Sleep(10 * time.Millisecond)
	task.Title = "changed"
	task.CreatedAt = time.Time{} // a stale caller copy must not reset it
	require.NoError(t, repo.Save(ctx, task))

	loaded, err := repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.WithinDuration(t, created, loaded.CreatedAt, time.Second)
	assert.True(t, loaded.UpdatedAt.After(loaded.CreatedAt) || loaded.UpdatedAt.Equal(loaded.CreatedAt))
}

func TestTaskSaveShrinksSubtaskSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := testCtx()

	task := sampleTask("t1", "one", "two", "three")
	require.NoError(t, repo.Save(ctx, task))

	task.Subtasks = task.Subtasks[:1]
	require.NoError(t, repo.Save(ctx, task))

	loaded, err := repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, loaded.Subtasks, 1)
	assert.Equal(t, "one", loaded.Subtasks[0].Title)
}

func TestTaskDeleteCascadesAndClearsBlockRefs(t *testing.T) {
	db := newTestDB(t)
	taskRepo := NewTaskRepository(db)
	blockRepo := NewBlockRepository(db)
	ctx := testCtx()

	task := sampleTask("t1", "one", "two")
	require.NoError(t, taskRepo.Save(ctx, task))

	taskID := "t1"
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	block := &model.TimeBlock{
		ID:        "b1",
		TaskID:    &taskID,
		Title:     "work on report",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Type:      model.BlockTask,
	}
	require.NoError(t, blockRepo.Upsert(ctx, block))

	require.NoError(t, taskRepo.Delete(ctx, "t1"))

	var subtaskRows int64
	require.NoError(t, db.Model(&model.Subtask{}).Count(&subtaskRows).Error)
	assert.EqualValues(t, 0, subtaskRows)

	exists, err := taskRepo.Exists(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, exists)

	// The block survives with its weak reference cleared.
	loaded, err := blockRepo.FindByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, loaded.TaskID)
	assert.Equal(t, "work on report", loaded.Title)
}

func TestCorruptJSONColumnsDecodeEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := testCtx()

	task := sampleTask("t1")
	task.Recurrence = model.Recurrence{Frequency: "weekly", Weekdays: []int{1, 3}}
	task.Notifications = model.NotificationList{{OffsetMinutes: 10}}
	require.NoError(t, repo.Save(ctx, task))

	// Round trip before corruption.
	loaded, err := repo.FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "weekly", loaded.Recurrence.Frequency)
	assert.Equal(t, []int{1, 3}, loaded.Recurrence.Weekdays)
	require.Len(t, loaded.Notifications, 1)

	require.NoError(t, db.Exec(
		`UPDATE tasks SET recurrence_json = '{broken', notifications_json = 'not json' WHERE id = 't1'`,
	).Error)

	loaded, err = repo.FindByID(ctx, "t1")
	require.NoError(t, err, "corrupt JSON must not fail the load")
	assert.True(t, loaded.Recurrence.IsZero())
	assert.Empty(t, loaded.Notifications)
}

func TestListOpenBefore(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := testCtx()

	todo := sampleTask("t-todo")
	todo.ScheduledDate = "2026-03-09"
	require.NoError(t, repo.Save(ctx, todo))

	done := sampleTask("t-done")
	done.ScheduledDate = "2026-03-09"
	done.Status = model.StatusDone
	require.NoError(t, repo.Save(ctx, done))

	today := sampleTask("t-today")
	today.ScheduledDate = "2026-03-10"
	require.NoError(t, repo.Save(ctx, today))

	unscheduled := sampleTask("t-unscheduled")
	unscheduled.ScheduledDate = ""
	require.NoError(t, repo.Save(ctx, unscheduled))

	open, err := repo.ListOpenBefore(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "t-todo", open[0].ID)
}
