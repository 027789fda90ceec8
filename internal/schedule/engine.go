// Package schedule owns the in-memory model of a day's time blocks and
// keeps it free of undetected overlaps.
package schedule

import (
	"errors"
	"sort"
	"time"

	"time-planner/internal/model"
)

// Engine errors.
var (
	ErrDuplicateID     = errors.New("time block id already present")
	ErrInvalidInterval = errors.New("time block start must be before end")
)

// Engine holds the working set of time blocks for the day in view.
// Insertion order is kept for display; the authoritative order during
// conflict resolution is always start time ascending. Mutations are
// expected from a single control path at a time; the engine itself does
// no locking.
type Engine struct {
	blocks []*model.TimeBlock
}

func NewEngine() *Engine {
	return &Engine{}
}

// Load replaces the working set, e.g. when switching the day in view.
func (e *Engine) Load(blocks []*model.TimeBlock) {
	e.blocks = make([]*model.TimeBlock, len(blocks))
	copy(e.blocks, blocks)
}

// Blocks returns the working set in display order. The pointers are live:
// callers must not mutate intervals behind the engine's back.
func (e *Engine) Blocks() []*model.TimeBlock {
	out := make([]*model.TimeBlock, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// Get returns the block with the given id, or nil.
func (e *Engine) Get(id string) *model.TimeBlock {
	for _, b := range e.blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (e *Engine) Len() int { return len(e.blocks) }

// Insert appends a block to the working set. It does not resolve
// overlaps; resolution is an explicit step run after a batch of edits.
func (e *Engine) Insert(b *model.TimeBlock) error {
	if !b.StartTime.Before(b.EndTime) {
		return ErrInvalidInterval
	}
	if e.Get(b.ID) != nil {
		return ErrDuplicateID
	}
	e.blocks = append(e.blocks, b)
	return nil
}

// BlockPatch carries the optional field updates of an edit. Nil fields
// are left untouched.
type BlockPatch struct {
	Title       *string
	Color       *string
	Type        *model.BlockType
	TaskID      *string
	ClearTaskID bool
	StartTime   *time.Time
	EndTime     *time.Time
}

// Update merges patch into the identified block. Returns false when the
// id is unknown; the working set is then unchanged.
func (e *Engine) Update(id string, patch BlockPatch) bool {
	b := e.Get(id)
	if b == nil {
		return false
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Color != nil {
		b.Color = *patch.Color
	}
	if patch.Type != nil {
		b.Type = *patch.Type
	}
	if patch.ClearTaskID {
		b.TaskID = nil
	} else if patch.TaskID != nil {
		b.TaskID = patch.TaskID
	}
	if patch.StartTime != nil {
		b.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		b.EndTime = *patch.EndTime
	}
	return true
}

// Delete removes the block. No side effects on its siblings.
func (e *Engine) Delete(id string) bool {
	for i, b := range e.blocks {
		if b.ID == id {
			e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
			return true
		}
	}
	return false
}

// Move sets a new interval on the identified block and resolves the
// resulting overlaps. It returns every block whose interval changed,
// the moved block first, and false when the id is unknown or the new
// interval is inverted or empty; the working set is then unchanged.
func (e *Engine) Move(id string, newStart, newEnd time.Time) ([]*model.TimeBlock, bool) {
	b := e.Get(id)
	if b == nil || !newStart.Before(newEnd) {
		return nil, false
	}
	b.StartTime = newStart
	b.EndTime = newEnd
	return e.mergeDirty(b, e.ResolveOverlaps()), true
}

// Resize sets a new end on the identified block and resolves overlaps,
// mirroring Move for the resize-commit event. An end at or before the
// block's start is rejected the same way as an unknown id.
func (e *Engine) Resize(id string, newEnd time.Time) ([]*model.TimeBlock, bool) {
	b := e.Get(id)
	if b == nil || !newEnd.After(b.StartTime) {
		return nil, false
	}
	b.EndTime = newEnd
	return e.mergeDirty(b, e.ResolveOverlaps()), true
}

func (e *Engine) mergeDirty(edited *model.TimeBlock, dirty []*model.TimeBlock) []*model.TimeBlock {
	out := []*model.TimeBlock{edited}
	for _, b := range dirty {
		if b != edited {
			out = append(out, b)
		}
	}
	return out
}

// ResolveOverlaps walks the working set in start order and shifts each
// block that overlaps its predecessor so it starts exactly at the
// predecessor's end, preserving its duration. The walk is single-pass
// and uses already-shifted values, so a chain of overlapping blocks
// collapses into a contiguous back-to-back run anchored at the first
// unmoved block. Cascades may push past the nominal day boundary; that
// is accepted, not an error.
//
// It returns the blocks whose interval actually changed. The caller is
// responsible for persisting all of them, not just the one the user
// edited.
func (e *Engine) ResolveOverlaps() []*model.TimeBlock {
	if len(e.blocks) < 2 {
		return nil
	}

	sorted := make([]*model.TimeBlock, len(e.blocks))
	copy(sorted, e.blocks)
	// Stable: equal start times keep their prior relative order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var dirty []*model.TimeBlock
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if Overlaps(prev, curr) {
			shiftTo(curr, prev.EndTime)
			dirty = append(dirty, curr)
		}
	}
	return dirty
}
