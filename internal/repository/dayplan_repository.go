package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"time-planner/internal/model"
)

// DayPlanRepository handles CRUD for per-date plans, keyed by date.
type DayPlanRepository struct {
	db *gorm.DB
}

func NewDayPlanRepository(db *gorm.DB) *DayPlanRepository {
	return &DayPlanRepository{db: db}
}

// Get loads the plan for a date. Returns gorm.ErrRecordNotFound when the
// date has never been planned; lazy creation is the service's job.
func (r *DayPlanRepository) Get(ctx context.Context, date string) (*model.DayPlan, error) {
	var plan model.DayPlan
	if err := r.db.WithContext(ctx).Where("date = ?", date).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// Upsert inserts or replaces the plan row for its date.
func (r *DayPlanRepository) Upsert(ctx context.Context, plan *model.DayPlan) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		UpdateAll: true,
	}).Create(plan).Error
	if err != nil {
		return fmt.Errorf("upsert day plan: %w", err)
	}
	return nil
}

func (r *DayPlanRepository) Delete(ctx context.Context, date string) error {
	if err := r.db.WithContext(ctx).Where("date = ?", date).Delete(&model.DayPlan{}).Error; err != nil {
		return fmt.Errorf("delete day plan: %w", err)
	}
	return nil
}

// LoadAll returns every stored plan in date order.
func (r *DayPlanRepository) LoadAll(ctx context.Context) ([]model.DayPlan, error) {
	var plans []model.DayPlan
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
