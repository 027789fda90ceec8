package service

import (
	"context"
	"strconv"

	"time-planner/internal/geometry"
	"time-planner/internal/repository"
)

// Settings are the typed user preferences. They live in the flat
// key/value settings table; every field is encoded as a string for
// storage and decoded with a per-key rule on load. Unknown keys are
// ignored, undecodable values fall back to the defaults.
type Settings struct {
	WakeTime         string // HH:MM
	SleepTime        string // HH:MM
	SnapMinutes      int
	CarryOverEnabled bool
}

const (
	keyWakeTime         = "wake_time"
	keySleepTime        = "sleep_time"
	keySnapMinutes      = "snap_minutes"
	keyCarryOverEnabled = "carry_over_enabled"
)

// SettingsService decodes and encodes the settings table.
type SettingsService struct {
	repo     *repository.SettingsRepository
	defaults Settings
}

func NewSettingsService(repo *repository.SettingsRepository, defaults Settings) *SettingsService {
	return &SettingsService{repo: repo, defaults: defaults}
}

// Load returns the stored settings merged over the defaults.
func (s *SettingsService) Load(ctx context.Context) (Settings, error) {
	out := s.defaults
	stored, err := s.repo.LoadAll(ctx)
	if err != nil {
		return out, err
	}
	for key, value := range stored {
		switch key {
		case keyWakeTime:
			if _, err := geometry.TimeToMinutes(value); err == nil {
				out.WakeTime = value
			}
		case keySleepTime:
			if _, err := geometry.TimeToMinutes(value); err == nil {
				out.SleepTime = value
			}
		case keySnapMinutes:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				out.SnapMinutes = n
			}
		case keyCarryOverEnabled:
			out.CarryOverEnabled = value == "true"
		}
	}
	return out, nil
}

// Save writes every field back as its string encoding.
func (s *SettingsService) Save(ctx context.Context, settings Settings) error {
	pairs := map[string]string{
		keyWakeTime:         settings.WakeTime,
		keySleepTime:        settings.SleepTime,
		keySnapMinutes:      strconv.Itoa(settings.SnapMinutes),
		keyCarryOverEnabled: strconv.FormatBool(settings.CarryOverEnabled),
	}
	for key, value := range pairs {
		if err := s.repo.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
