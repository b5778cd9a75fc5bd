package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is persisted as a JSON array column so challenge documents keep
// the shape the front end already consumes.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ProgressEntry is a single daily check-in. Date is a "YYYY-MM-DD" string,
// normalized before it is stored.
type ProgressEntry struct {
	Date   string `json:"date"`
	Report string `json:"report"`
}

type ProgressEntryList []ProgressEntry

func (l ProgressEntryList) Value() (driver.Value, error) {
	if l == nil {
		l = ProgressEntryList{}
	}
	return json.Marshal(l)
}

func (l *ProgressEntryList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

type Challenge struct {
	ID              string            `gorm:"primaryKey" json:"id"`
	Username        string            `gorm:"index" json:"username"`
	Challenge       string            `json:"challenge"`
	Duration        string            `json:"duration"`
	Applause        int               `json:"applause"`
	Completed       bool              `json:"completed"`
	CreatedAt       time.Time         `json:"createdAt"`
	ApplaudedBy     StringList        `gorm:"type:text" json:"applaudedBy"`
	ProofImageUrls  StringList        `gorm:"type:text" json:"proofImageUrls"`
	ProgressEntries ProgressEntryList `gorm:"type:text" json:"progressEntries"`

	// Computed per request, never stored.
	HasApplauded bool `gorm:"-" json:"hasApplauded"`
}

func (ch *Challenge) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	return nil
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for JSON scan")
	}
}
