package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Todo struct {
	ID          string     `gorm:"primaryKey" json:"_id"`
	Username    string     `gorm:"index" json:"username"`
	Title       string     `json:"title"`
	Period      string     `json:"period"` // "onetime" or "permanent"
	Tags        StringList `gorm:"type:text" json:"tags"`
	Deadline    *time.Time `json:"deadline"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TimeList is persisted as a JSON array of RFC 3339 timestamps.
type TimeList []time.Time

func (l TimeList) Value() (driver.Value, error) {
	if l == nil {
		l = TimeList{}
	}
	return json.Marshal(l)
}

func (l *TimeList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// DeletionCount keeps one append-only deletion history per user. The length
// of DeletionDates is the user's all-time deletion count.
type DeletionCount struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	Username      string   `gorm:"uniqueIndex" json:"username"`
	DeletionDates TimeList `gorm:"type:text" json:"deletionDates"`
}

func (dc *DeletionCount) BeforeCreate(tx *gorm.DB) error {
	if dc.ID == "" {
		dc.ID = uuid.NewString()
	}
	return nil
}
