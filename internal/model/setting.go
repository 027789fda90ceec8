package model

// Setting is one row of the flat key/value settings table. Typed settings
// are encoded as strings here and decoded per key by the settings service.
type Setting struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (Setting) TableName() string { return "settings" }
