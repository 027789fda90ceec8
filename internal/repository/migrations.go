package repository

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// migrations holds the ordered schema steps. Step N brings the store from
// version N-1 to N. Every statement of a step runs inside one transaction
// and the version row is advanced in that same transaction, so a failed
// step leaves the store at the previous version.
var migrations = [][]string{
	// v1: initial schema.
	{
		`CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'todo',
			priority INTEGER NOT NULL DEFAULT 0,
			scheduled_date TEXT NOT NULL DEFAULT '',
			scheduled_time TEXT,
			estimated_minutes INTEGER,
			sort_order INTEGER NOT NULL DEFAULT 0,
			recurrence_json TEXT,
			notifications_json TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			completed_at DATETIME,
			carried_over_from TEXT
		)`,
		`CREATE INDEX idx_tasks_scheduled_date ON tasks(scheduled_date)`,
		`CREATE TABLE subtasks (
			id TEXT PRIMARY KEY,
			parent_task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			title TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX idx_subtasks_parent_task_id ON subtasks(parent_task_id)`,
		`CREATE TABLE time_blocks (
			id TEXT PRIMARY KEY,
			task_id TEXT REFERENCES tasks(id) ON DELETE SET NULL,
			title TEXT NOT NULL DEFAULT '',
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			color TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'task'
		)`,
		`CREATE INDEX idx_time_blocks_task_id ON time_blocks(task_id)`,
		`CREATE TABLE day_plans (
			date TEXT PRIMARY KEY,
			wake_time TEXT NOT NULL DEFAULT '',
			sleep_time TEXT NOT NULL DEFAULT '',
			task_ids_json TEXT,
			time_block_ids_json TEXT
		)`,
		`CREATE TABLE templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			blocks_json TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		)`,
	},
}

// SchemaVersion is the version an up-to-date store reports.
var SchemaVersion = len(migrations)

// Migrate applies every pending schema step in order. Re-running on an
// up-to-date store executes no statements.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`).Error; err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	version, err := currentVersion(db)
	if err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		target := i + 1
		step := migrations[i]
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range step {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("schema step %d: %w", target, err)
				}
			}
			if err := tx.Exec(`DELETE FROM schema_version`).Error; err != nil {
				return fmt.Errorf("schema step %d: clear version: %w", target, err)
			}
			if err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, target).Error; err != nil {
				return fmt.Errorf("schema step %d: record version: %w", target, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("[info] schema migrated to version %d", target)
	}

	return nil
}

// currentVersion reads the stored schema version, 0 when absent.
func currentVersion(db *gorm.DB) (int, error) {
	var version int
	if err := db.Raw(`SELECT version FROM schema_version LIMIT 1`).Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
