package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"time-planner/internal/model"
)

// BlockRepository handles CRUD for time blocks.
type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Upsert inserts or replaces the block row keyed by id.
func (r *BlockRepository) Upsert(ctx context.Context, block *model.TimeBlock) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(block).Error
	if err != nil {
		return fmt.Errorf("upsert time block: %w", err)
	}
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TimeBlock{}).Error; err != nil {
		return fmt.Errorf("delete time block: %w", err)
	}
	return nil
}

// LoadAll returns every stored block ordered by start time.
func (r *BlockRepository) LoadAll(ctx context.Context) ([]model.TimeBlock, error) {
	var blocks []model.TimeBlock
	if err := r.db.WithContext(ctx).Order("start_time ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// ListByIDs returns the blocks for a day plan's membership list, in the
// order the list gives them. Ids with no row are skipped.
func (r *BlockRepository) ListByIDs(ctx context.Context, ids []string) ([]model.TimeBlock, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []model.TimeBlock
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]model.TimeBlock, len(rows))
	for _, b := range rows {
		byID[b.ID] = b
	}
	blocks := make([]model.TimeBlock, 0, len(rows))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// FindByID loads one block.
func (r *BlockRepository) FindByID(ctx context.Context, id string) (*model.TimeBlock, error) {
	var block model.TimeBlock
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}
