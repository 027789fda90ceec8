package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// TemplateService manages reusable day layouts and seeds the built-in
// ones on first start.
type TemplateService struct {
	repo *repository.TemplateRepository
}

func NewTemplateService(repo *repository.TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

// defaultTemplates are seeded once, only into an empty template table.
func defaultTemplates() []model.Template {
	return []model.Template{
		{
			ID:   uuid.NewString(),
			Name: "Deep Work Day",
			Icon: "🎯",
			Blocks: model.BlueprintList{
				{Title: "Morning routine", Type: model.BlockBreak, StartHour: 7, StartMinute: 0, DurationMinutes: 60, Color: "#8BC34A"},
				{Title: "Focus session", Type: model.BlockFocus, StartHour: 9, StartMinute: 0, DurationMinutes: 120, Color: "#3F51B5"},
				{Title: "Lunch", Type: model.BlockBreak, StartHour: 12, StartMinute: 0, DurationMinutes: 60, Color: "#8BC34A"},
				{Title: "Focus session", Type: model.BlockFocus, StartHour: 13, StartMinute: 30, DurationMinutes: 120, Color: "#3F51B5"},
			},
		},
		{
			ID:   uuid.NewString(),
			Name: "Meeting Day",
			Icon: "📅",
			Blocks: model.BlueprintList{
				{Title: "Inbox review", Type: model.BlockTask, StartHour: 8, StartMinute: 30, DurationMinutes: 30, Color: "#FF9800"},
				{Title: "Stand-up", Type: model.BlockEvent, StartHour: 9, StartMinute: 30, DurationMinutes: 15, Color: "#F44336"},
				{Title: "Meeting block", Type: model.BlockEvent, StartHour: 10, StartMinute: 0, DurationMinutes: 120, Color: "#F44336"},
				{Title: "Catch-up", Type: model.BlockTask, StartHour: 14, StartMinute: 0, DurationMinutes: 90, Color: "#FF9800"},
			},
		},
		{
			ID:   uuid.NewString(),
			Name: "Recovery Day",
			Icon: "🌿",
			Blocks: model.BlueprintList{
				{Title: "Slow morning", Type: model.BlockBreak, StartHour: 8, StartMinute: 0, DurationMinutes: 90, Color: "#8BC34A"},
				{Title: "Light tasks", Type: model.BlockTask, StartHour: 10, StartMinute: 0, DurationMinutes: 90, Color: "#FF9800"},
				{Title: "Walk", Type: model.BlockBreak, StartHour: 15, StartMinute: 0, DurationMinutes: 60, Color: "#8BC34A"},
			},
		},
	}
}

// EnsureDefaults seeds the built-in templates when the table is empty.
// A store that already has templates is left alone, even if the user
// emptied every one of them of its blocks.
func (s *TemplateService) EnsureDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, tpl := range defaultTemplates() {
		t := tpl
		if err := s.repo.Upsert(ctx, &t); err != nil {
			return fmt.Errorf("seed template %q: %w", tpl.Name, err)
		}
	}
	log.Printf("[info] seeded %d default templates", len(defaultTemplates()))
	return nil
}

func (s *TemplateService) List(ctx context.Context) ([]model.Template, error) {
	return s.repo.LoadAll(ctx)
}

func (s *TemplateService) Get(ctx context.Context, id string) (*model.Template, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TemplateService) Save(ctx context.Context, tpl *model.Template) error {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	return s.repo.Upsert(ctx, tpl)
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
