package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Config keeps runtime settings for the planner process.
type Config struct {
	// DatabasePath is the SQLite file backing all durable state.
	DatabasePath string
	// WakeTime and SleepTime are the default day bounds (HH:MM) used
	// when a day plan is created lazily and no stored setting overrides
	// them.
	WakeTime  string
	SleepTime string
	// SnapMinutes is the drag grid quantum.
	SnapMinutes int
	// CarryOverAt is the HH:MM time of the daily roll-over job for
	// incomplete tasks. Empty disables the job.
	CarryOverAt string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabasePath: strings.TrimSpace(os.Getenv("PLANNER_DB")),
		WakeTime:     strings.TrimSpace(os.Getenv("PLANNER_WAKE_TIME")),
		SleepTime:    strings.TrimSpace(os.Getenv("PLANNER_SLEEP_TIME")),
		SnapMinutes:  parsePositiveInt(os.Getenv("PLANNER_SNAP_MINUTES")),
		CarryOverAt:  strings.TrimSpace(os.Getenv("PLANNER_CARRY_OVER_AT")),
	}

	if cfg.DatabasePath == "" {
		home, err := homedir.Dir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.DatabasePath = filepath.Join(home, ".time-planner", "planner.db")
	}

	if cfg.WakeTime == "" {
		cfg.WakeTime = "07:00"
	}
	if cfg.SleepTime == "" {
		cfg.SleepTime = "23:00"
	}
	if cfg.SnapMinutes == 0 {
		cfg.SnapMinutes = 15
	}
	if cfg.CarryOverAt == "" {
		cfg.CarryOverAt = "00:05"
	}

	return cfg, nil
}

func parsePositiveInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
