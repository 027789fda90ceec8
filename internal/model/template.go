package model

import "time"

// Template is a reusable day layout: an ordered list of block blueprints
// that can be instantiated onto any date.
type Template struct {
	ID        string        `gorm:"column:id;primaryKey"`
	Name      string        `gorm:"column:name"`
	Icon      string        `gorm:"column:icon"`
	Blocks    BlueprintList `gorm:"column:blocks_json;type:text"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (Template) TableName() string { return "templates" }
