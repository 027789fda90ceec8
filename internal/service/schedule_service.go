package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"time-planner/internal/model"
	"time-planner/internal/repository"
	"time-planner/internal/schedule"
)

// persistTimeout bounds each background write.
const persistTimeout = 10 * time.Second

// BlockInput represents data required to place a new block.
type BlockInput struct {
	Title     string
	TaskID    *string
	StartTime time.Time
	EndTime   time.Time
	Color     string
	Type      model.BlockType
}

// ScheduleService mediates between UI commit events and the scheduling
// engine plus durable storage. Edits mutate the in-memory day
// synchronously; every block the resolution pass touched is then written
// back asynchronously. A failed write is logged and dropped; memory
// stays the source of truth until the next successful write of that
// entity (at-most-once durability, by contract).
//
// Mutations are serialized by the interaction model (one drag at a
// time); the mutex only guards against a commit racing the background
// carry-over job.
type ScheduleService struct {
	blocks *repository.BlockRepository
	plans  *PlanService

	mu     sync.Mutex
	engine *schedule.Engine
	date   string // day in view, YYYY-MM-DD

	writes chan persistJob
	wg     sync.WaitGroup
}

type persistJob struct {
	what string
	fn   func(ctx context.Context) error
}

func NewScheduleService(blocks *repository.BlockRepository, plans *PlanService) *ScheduleService {
	s := &ScheduleService{
		blocks: blocks,
		plans:  plans,
		engine: schedule.NewEngine(),
		writes: make(chan persistJob, 64),
	}
	go s.writeLoop()
	return s
}

// writeLoop drains background writes one at a time, in submit order, so
// two writes of the same block can never land reversed.
func (s *ScheduleService) writeLoop() {
	for job := range s.writes {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := job.fn(ctx); err != nil {
			log.Printf("[error] persist %s: %v", job.what, err)
		}
		cancel()
		s.wg.Done()
	}
}

// LoadDay switches the day in view: the day plan is loaded (created
// lazily on first sight) and the engine is hydrated with its blocks.
func (s *ScheduleService) LoadDay(ctx context.Context, date string) (*model.DayPlan, []*model.TimeBlock, error) {
	plan, err := s.plans.GetOrCreate(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.blocks.ListByIDs(ctx, plan.TimeBlockIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load day blocks: %w", err)
	}

	blocks := make([]*model.TimeBlock, len(rows))
	for i := range rows {
		blocks[i] = &rows[i]
	}

	s.mu.Lock()
	s.engine.Load(blocks)
	s.date = date
	s.mu.Unlock()

	return plan, blocks, nil
}

// Blocks returns the day in view in display order.
func (s *ScheduleService) Blocks() []*model.TimeBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Blocks()
}

// CreateBlock places a new block on the day in view and persists it.
// The block is appended without resolving overlaps; resolution runs on
// the next move/resize commit, matching the batching of drag gestures.
func (s *ScheduleService) CreateBlock(input BlockInput) (*model.TimeBlock, error) {
	block := &model.TimeBlock{
		ID:        uuid.NewString(),
		TaskID:    input.TaskID,
		Title:     input.Title,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Color:     input.Color,
		Type:      input.Type,
	}
	if block.Type == "" {
		block.Type = model.BlockTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.Insert(block); err != nil {
		return nil, err
	}

	date := s.date
	saved := *block
	s.persistAsync("create block", func(ctx context.Context) error {
		if err := s.blocks.Upsert(ctx, &saved); err != nil {
			return err
		}
		if date == "" {
			return nil
		}
		return s.plans.AddBlock(ctx, date, saved.ID)
	})
	return block, nil
}

// CommitMove applies a block-move commit event: set the new interval,
// resolve overlaps, persist everything that shifted. Returns the touched
// blocks and false when the id is not on the day in view.
func (s *ScheduleService) CommitMove(id string, newStart, newEnd time.Time) ([]*model.TimeBlock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty, ok := s.engine.Move(id, newStart, newEnd)
	if !ok {
		return nil, false
	}
	s.persistBlocks(dirty)
	return dirty, true
}

// CommitResize applies a resize commit event, mirroring CommitMove.
func (s *ScheduleService) CommitResize(id string, newEnd time.Time) ([]*model.TimeBlock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty, ok := s.engine.Resize(id, newEnd)
	if !ok {
		return nil, false
	}
	s.persistBlocks(dirty)
	return dirty, true
}

// UpdateBlock merges a field patch into a block and persists it. The
// no-op on unknown ids is deliberate: the UI may commit an edit for a
// block that was just removed optimistically.
func (s *ScheduleService) UpdateBlock(id string, patch schedule.BlockPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.engine.Update(id, patch) {
		return false
	}
	s.persistBlocks([]*model.TimeBlock{s.engine.Get(id)})
	return true
}

// DeleteBlock removes a block from the day and from storage.
func (s *ScheduleService) DeleteBlock(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.engine.Delete(id) {
		return false
	}
	date := s.date
	s.persistAsync("delete block", func(ctx context.Context) error {
		if err := s.blocks.Delete(ctx, id); err != nil {
			return err
		}
		if date == "" {
			return nil
		}
		return s.plans.RemoveBlock(ctx, date, id)
	})
	return true
}

// ResolveOverlaps runs an explicit resolution pass, e.g. after a batch
// of inserts, and persists whatever shifted.
func (s *ScheduleService) ResolveOverlaps() []*model.TimeBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty := s.engine.ResolveOverlaps()
	s.persistBlocks(dirty)
	return dirty
}

// ApplyTemplate instantiates a template's blueprints onto the day in
// view, resolves the resulting overlaps and persists every new or
// shifted block.
func (s *ScheduleService) ApplyTemplate(tpl *model.Template, day time.Time) ([]*model.TimeBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]*model.TimeBlock, 0, len(tpl.Blocks))
	for _, bp := range tpl.Blocks {
		start := time.Date(day.Year(), day.Month(), day.Day(), bp.StartHour, bp.StartMinute, 0, 0, day.Location())
		block := &model.TimeBlock{
			ID:        uuid.NewString(),
			Title:     bp.Title,
			StartTime: start,
			EndTime:   start.Add(time.Duration(bp.DurationMinutes) * time.Minute),
			Color:     bp.Color,
			Type:      bp.Type,
		}
		if block.Type == "" {
			block.Type = model.BlockTask
		}
		if err := s.engine.Insert(block); err != nil {
			// All or nothing: a bad blueprint must not leave the
			// earlier ones stranded in memory, unpersisted.
			for _, inserted := range created {
				s.engine.Delete(inserted.ID)
			}
			return nil, fmt.Errorf("instantiate template %q: %w", tpl.Name, err)
		}
		created = append(created, block)
	}

	dirty := s.engine.ResolveOverlaps()

	// Persist every created block plus whatever the resolution shifted.
	touched := make(map[string]*model.TimeBlock, len(created)+len(dirty))
	for _, b := range created {
		touched[b.ID] = b
	}
	for _, b := range dirty {
		touched[b.ID] = b
	}
	toSave := make([]*model.TimeBlock, 0, len(touched))
	for _, b := range touched {
		toSave = append(toSave, b)
	}
	s.persistBlocks(toSave)

	date := s.date
	ids := make([]string, len(created))
	for i, b := range created {
		ids[i] = b.ID
	}
	s.persistAsync("template membership", func(ctx context.Context) error {
		if date == "" {
			return nil
		}
		for _, id := range ids {
			if err := s.plans.AddBlock(ctx, date, id); err != nil {
				return err
			}
		}
		return nil
	})

	return created, nil
}

// persistBlocks snapshots the given blocks and writes them in the
// background. Snapshotting matters: the engine may shift the live
// structs again before the write lands.
func (s *ScheduleService) persistBlocks(blocks []*model.TimeBlock) {
	if len(blocks) == 0 {
		return
	}
	saved := make([]model.TimeBlock, len(blocks))
	for i, b := range blocks {
		saved[i] = *b
	}
	s.persistAsync("save blocks", func(ctx context.Context) error {
		for i := range saved {
			if err := s.blocks.Upsert(ctx, &saved[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// persistAsync fires a durable write without blocking the caller. The
// write's failure is logged and swallowed; it is never rolled back into
// the in-memory state.
func (s *ScheduleService) persistAsync(what string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	s.writes <- persistJob{what: what, fn: fn}
}

// Flush blocks until every in-flight write has finished. Used by tests
// and on shutdown; it does not change the at-most-once contract.
func (s *ScheduleService) Flush() {
	s.wg.Wait()
}

// Close flushes pending writes and stops the write worker.
func (s *ScheduleService) Close() {
	s.wg.Wait()
	close(s.writes)
}
