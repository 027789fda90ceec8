package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func dayAt(hour, min int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func mustCreate(t *testing.T, s *ScheduleService, title string, start, end time.Time) *model.TimeBlock {
	t.Helper()
	block, err := s.CreateBlock(BlockInput{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Type:      model.BlockTask,
	})
	require.NoError(t, err)
	return block
}

func TestCommitMovePersistsWholeDirtySet(t *testing.T) {
	scheduleSvc, _, _, _, db := newTestServices(t)
	ctx := testCtx()

	_, _, err := scheduleSvc.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)

	a := mustCreate(t, scheduleSvc, "a", dayAt(9, 0), dayAt(10, 0))
	b := mustCreate(t, scheduleSvc, "b", dayAt(10, 0), dayAt(11, 0))

	dirty, ok := scheduleSvc.CommitMove(a.ID, dayAt(9, 30), dayAt(10, 30))
	require.True(t, ok)
	require.Len(t, dirty, 2)

	scheduleSvc.Flush()

	// Both the moved block and the cascaded one reached storage.
	blockRepo := repository.NewBlockRepository(db)
	storedA, err := blockRepo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, dayAt(9, 30), storedA.StartTime, time.Second)

	storedB, err := blockRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, dayAt(10, 30), storedB.StartTime, time.Second)
	assert.WithinDuration(t, dayAt(11, 30), storedB.EndTime, time.Second)

	// Membership followed the creations.
	plan, err := repository.NewDayPlanRepository(db).Get(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, []string(plan.TimeBlockIDs))
}

func TestCommitMoveUnknownIDIsNoop(t *testing.T) {
	scheduleSvc, _, _, _, _ := newTestServices(t)
	ctx := testCtx()
	_, _, err := scheduleSvc.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)

	dirty, ok := scheduleSvc.CommitMove("ghost", dayAt(9, 0), dayAt(10, 0))
	assert.False(t, ok)
	assert.Nil(t, dirty)
}

func TestCommitResizeCascades(t *testing.T) {
	scheduleSvc, _, _, _, db := newTestServices(t)
	ctx := testCtx()
	_, _, err := scheduleSvc.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)

	a := mustCreate(t, scheduleSvc, "a", dayAt(9, 0), dayAt(10, 0))
	b := mustCreate(t, scheduleSvc, "b", dayAt(10, 0), dayAt(10, 30))

	dirty, ok := scheduleSvc.CommitResize(a.ID, dayAt(10, 15))
	require.True(t, ok)
	require.Len(t, dirty, 2)

	scheduleSvc.Flush()

	stored, err := repository.NewBlockRepository(db).FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, dayAt(10, 15), stored.StartTime, time.Second)
	// Duration preserved through the shift.
	assert.Equal(t, 30*time.Minute, stored.EndTime.Sub(stored.StartTime))
}

func TestDeleteBlockRemovesRowAndMembership(t *testing.T) {
	scheduleSvc, _, planSvc, _, db := newTestServices(t)
	ctx := testCtx()
	_, _, err := scheduleSvc.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)

	a := mustCreate(t, scheduleSvc, "a", dayAt(9, 0), dayAt(10, 0))
	scheduleSvc.Flush()

	require.True(t, scheduleSvc.DeleteBlock(a.ID))
	assert.False(t, scheduleSvc.DeleteBlock(a.ID))
	scheduleSvc.Flush()

	_, err = repository.NewBlockRepository(db).FindByID(ctx, a.ID)
	assert.Error(t, err)

	plan, err := planSvc.GetOrCreate(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Empty(t, plan.TimeBlockIDs)
}

func TestLoadDayRestoresPersistedBlocks(t *testing.T) {
	scheduleSvc, _, _, _, db := newTestServices(t)
	ctx := testCtx()
	_, _, err := scheduleSvc.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)

	a := mustCreate(t, scheduleSvc, "a", dayAt(9, 0), dayAt(10, 0))
	scheduleSvc.Flush()

	// A second service over the same store sees the same day.
	settingsSvc := NewSettingsService(repository.NewSettingsRepository(db), defaultTestSettings())
	planSvc := NewPlanService(repository.NewDayPlanRepository(db), settingsSvc)
	fresh := NewScheduleService(repository.NewBlockRepository(db), planSvc)

	_, blocks, err := fresh.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, a.ID, blocks[0].ID)
	assert.WithinDuration(t, dayAt(9, 0), blocks[0].StartTime, time.Second)
}

func TestApplyTemplateBadBlueprintLeavesDayUntouched(t *testing.T) {
	scheduleSvc, _, _, _, db := newTestServices(t)
	ctx := testCtx()
	_, _, err := scheduleSvc.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)

	existing := mustCreate(t, scheduleSvc, "standing", dayAt(8, 0), dayAt(9, 0))
	scheduleSvc.Flush()

	tpl := &model.Template{
		ID:   "tpl-broken",
		Name: "Broken",
		Blocks: model.BlueprintList{
			{Title: "Routine", Type: model.BlockBreak, StartHour: 7, StartMinute: 0, DurationMinutes: 60},
			{Title: "Empty", Type: model.BlockFocus, StartHour: 9, StartMinute: 0, DurationMinutes: 0},
		},
	}

	_, err = scheduleSvc.ApplyTemplate(tpl, testDay)
	require.Error(t, err)
	scheduleSvc.Flush()

	// The valid first blueprint did not linger in memory or storage.
	blocks := scheduleSvc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, existing.ID, blocks[0].ID)

	stored, err := repository.NewBlockRepository(db).LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	plan, err := repository.NewDayPlanRepository(db).Get(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{existing.ID}, []string(plan.TimeBlockIDs))
}

func TestApplyTemplatePlacesAndPersistsBlocks(t *testing.T) {
	scheduleSvc, _, _, _, db := newTestServices(t)
	ctx := testCtx()
	_, _, err := scheduleSvc.LoadDay(ctx, "2026-03-10")
	require.NoError(t, err)

	tpl := &model.Template{
		ID:   "tpl1",
		Name: "Morning",
		Blocks: model.BlueprintList{
			{Title: "Routine", Type: model.BlockBreak, StartHour: 7, StartMinute: 0, DurationMinutes: 60},
			{Title: "Focus", Type: model.BlockFocus, StartHour: 7, StartMinute: 30, DurationMinutes: 90},
		},
	}

	created, err := scheduleSvc.ApplyTemplate(tpl, testDay)
	require.NoError(t, err)
	require.Len(t, created, 2)
	scheduleSvc.Flush()

	// Overlapping blueprints were resolved on instantiation.
	blocks := scheduleSvc.Blocks()
	require.Len(t, blocks, 2)

	stored, err := repository.NewBlockRepository(db).LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.WithinDuration(t, dayAt(7, 0), stored[0].StartTime, time.Second)
	assert.WithinDuration(t, dayAt(8, 0), stored[1].StartTime, time.Second)
	assert.Equal(t, 90*time.Minute, stored[1].EndTime.Sub(stored[1].StartTime))

	plan, err := repository.NewDayPlanRepository(db).Get(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Len(t, plan.TimeBlockIDs, 2)
}
