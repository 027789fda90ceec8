package model

import (
	"database/sql/driver"
	"encoding/json"
)

// The structured sub-data of an entity (recurrence rules, notification
// lists, membership id lists, template blueprints) lives in JSON text
// columns. The wrapper types below own the encode/decode at the storage
// boundary so the rest of the code only ever sees structured values.
// A corrupt column decodes to the empty value instead of failing the load.

func jsonColumnBytes(value interface{}) []byte {
	switch v := value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// Recurrence describes how a task repeats. The zero value means the task
// does not repeat; it is stored as NULL. The descriptor is stored and
// round-tripped only, never expanded into occurrences here.
type Recurrence struct {
	Frequency string `json:"frequency"` // daily, weekly, monthly
	Interval  int    `json:"interval,omitempty"`
	Weekdays  []int  `json:"weekdays,omitempty"` // 0=Sunday .. 6=Saturday
	Until     string `json:"until,omitempty"`    // YYYY-MM-DD
}

func (r Recurrence) IsZero() bool { return r.Frequency == "" }

func (r Recurrence) Value() (driver.Value, error) {
	if r.IsZero() {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Recurrence) Scan(value interface{}) error {
	*r = Recurrence{}
	b := jsonColumnBytes(value)
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, r); err != nil {
		*r = Recurrence{}
	}
	return nil
}

// Notification is a reminder offset relative to a task's scheduled time.
type Notification struct {
	OffsetMinutes int    `json:"offsetMinutes"`
	Message       string `json:"message,omitempty"`
}

type NotificationList []Notification

func (l NotificationList) Value() (driver.Value, error) {
	if l == nil {
		l = NotificationList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *NotificationList) Scan(value interface{}) error {
	*l = NotificationList{}
	b := jsonColumnBytes(value)
	if len(b) == 0 {
		return nil
	}
	var out NotificationList
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	*l = out
	return nil
}

// IDList is an ordered list of entity ids, stored as a JSON array.
type IDList []string

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *IDList) Scan(value interface{}) error {
	*l = IDList{}
	b := jsonColumnBytes(value)
	if len(b) == 0 {
		return nil
	}
	var out IDList
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	*l = out
	return nil
}

// Contains reports whether id is present in the list.
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with id removed.
func (l IDList) Without(id string) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// BlockBlueprint is one entry of a template: a block shape without a date.
type BlockBlueprint struct {
	Title           string    `json:"title"`
	Type            BlockType `json:"type"`
	StartHour       int       `json:"startHour"`
	StartMinute     int       `json:"startMinute"`
	DurationMinutes int       `json:"durationMinutes"`
	Color           string    `json:"color"`
}

type BlueprintList []BlockBlueprint

func (l BlueprintList) Value() (driver.Value, error) {
	if l == nil {
		l = BlueprintList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *BlueprintList) Scan(value interface{}) error {
	*l = BlueprintList{}
	b := jsonColumnBytes(value)
	if len(b) == 0 {
		return nil
	}
	var out BlueprintList
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	*l = out
	return nil
}
