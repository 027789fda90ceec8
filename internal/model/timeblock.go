package model

import "time"

// BlockType enumerates the kinds of blocks that can sit on the timeline.
type BlockType string

const (
	BlockTask  BlockType = "task"
	BlockFocus BlockType = "focus"
	BlockEvent BlockType = "event"
	BlockBreak BlockType = "break"
)

// TimeBlock is a titled [start, end) interval on the daily timeline.
// TaskID is a weak reference: deleting the task keeps the block and
// clears the link. Invariant: StartTime < EndTime.
type TimeBlock struct {
	ID        string    `gorm:"column:id;primaryKey"`
	TaskID    *string   `gorm:"column:task_id;index"`
	Title     string    `gorm:"column:title"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	Color     string    `gorm:"column:color"`
	Type      BlockType `gorm:"column:type;default:task"`
}

func (TimeBlock) TableName() string { return "time_blocks" }

// Duration returns the block's length. Positive by construction.
func (b *TimeBlock) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}
