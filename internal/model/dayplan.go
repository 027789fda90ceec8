package model

import "time"

// DateFormat is the canonical calendar-date encoding used as the day plan
// key and for task scheduling.
const DateFormat = "2006-01-02"

// FormatDate renders t as a calendar date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DayPlan holds per-date metadata: wake/sleep bounds and the ordered
// membership lists of tasks and time blocks. It references ids only and
// owns neither entity.
type DayPlan struct {
	Date         string `gorm:"column:date;primaryKey"` // YYYY-MM-DD
	WakeTime     string `gorm:"column:wake_time"`       // HH:MM
	SleepTime    string `gorm:"column:sleep_time"`      // HH:MM
	TaskIDs      IDList `gorm:"column:task_ids_json;type:text"`
	TimeBlockIDs IDList `gorm:"column:time_block_ids_json;type:text"`
}

func (DayPlan) TableName() string { return "day_plans" }
