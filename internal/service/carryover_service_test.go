package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

func TestCarryOverCopiesOpenTasks(t *testing.T) {
	_, taskSvc, planSvc, carrySvc, db := newTestServices(t)
	ctx := testCtx()
	taskRepo := repository.NewTaskRepository(db)

	open, err := taskSvc.CreateTask(ctx, TaskInput{
		Title:         "finish slides",
		ScheduledDate: "2026-03-09",
		Subtasks:      []string{"outline", "polish"},
	})
	require.NoError(t, err)

	done, err := taskSvc.CreateTask(ctx, TaskInput{
		Title:         "book flights",
		ScheduledDate: "2026-03-09",
	})
	require.NoError(t, err)
	_, err = taskSvc.SetStatus(ctx, done.ID, model.StatusDone)
	require.NoError(t, err)

	carried, err := carrySvc.Run(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, carried, 1)

	clone := carried[0]
	assert.Equal(t, "finish slides", clone.Title)
	assert.Equal(t, "2026-03-10", clone.ScheduledDate)
	require.NotNil(t, clone.CarriedOverFrom)
	assert.Equal(t, open.ID, *clone.CarriedOverFrom)
	assert.Len(t, clone.Subtasks, 2)

	// The original stays on its date.
	orig, err := taskRepo.FindByID(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", orig.ScheduledDate)

	// The copy joined the target day's plan.
	plan, err := planSvc.GetOrCreate(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Contains(t, []string(plan.TaskIDs), clone.ID)
}

func TestCarryOverFollowsChainWithoutDuplicating(t *testing.T) {
	_, taskSvc, planSvc, carrySvc, _ := newTestServices(t)
	ctx := testCtx()

	orig, err := taskSvc.CreateTask(ctx, TaskInput{
		Title:         "finish slides",
		ScheduledDate: "2026-03-08",
	})
	require.NoError(t, err)

	day2, err := carrySvc.Run(ctx, "2026-03-09")
	require.NoError(t, err)
	require.Len(t, day2, 1)

	// Both the original and the day-2 copy are still open; only the
	// newest copy moves forward, once.
	day3, err := carrySvc.Run(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, day3, 1)
	require.NotNil(t, day3[0].CarriedOverFrom)
	assert.Equal(t, day2[0].ID, *day3[0].CarriedOverFrom)

	onDay3, err := taskSvc.ListByDate(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Len(t, onDay3, 1)

	plan, err := planSvc.GetOrCreate(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Len(t, []string(plan.TaskIDs), 1)

	// The chain keeps its provenance: day 3 points at day 2, day 2 at
	// the original.
	assert.Equal(t, orig.ID, *day2[0].CarriedOverFrom)
}

func TestCarryOverIsRepeatSafe(t *testing.T) {
	_, taskSvc, _, carrySvc, _ := newTestServices(t)
	ctx := testCtx()

	_, err := taskSvc.CreateTask(ctx, TaskInput{
		Title:         "finish slides",
		ScheduledDate: "2026-03-09",
	})
	require.NoError(t, err)

	first, err := carrySvc.Run(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := carrySvc.Run(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Empty(t, second, "a task is carried onto a date at most once")
}
