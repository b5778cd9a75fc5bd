package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type QuestionList []Question

func (l QuestionList) Value() (driver.Value, error) {
	if l == nil {
		l = QuestionList{}
	}
	return json.Marshal(l)
}

func (l *QuestionList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ScoreMap maps username to the highest quiz score seen (0-100).
type ScoreMap map[string]int

func (m ScoreMap) Value() (driver.Value, error) {
	if m == nil {
		m = ScoreMap{}
	}
	return json.Marshal(m)
}

func (m *ScoreMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// Quiz is one profession's question set plus its leaderboard. Profession is
// the lookup key, stored lower-cased and trimmed.
type Quiz struct {
	ID          string       `gorm:"primaryKey" json:"id"`
	Profession  string       `gorm:"uniqueIndex" json:"profession"`
	Questions   QuestionList `gorm:"type:text" json:"questions"`
	Leaderboard ScoreMap     `gorm:"type:text" json:"leaderboard"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Profession = NormalizeProfession(q.Profession)
	return nil
}

// UpdateLeaderboard stores the score only if it beats the user's existing
// one. Leaderboard entries never decrease.
func (q *Quiz) UpdateLeaderboard(username string, score int) {
	key := strings.TrimSpace(username)
	if key == "" || score < 0 {
		return
	}
	if q.Leaderboard == nil {
		q.Leaderboard = ScoreMap{}
	}
	if existing, ok := q.Leaderboard[key]; !ok || score > existing {
		q.Leaderboard[key] = score
	}
}

func NormalizeProfession(profession string) string {
	return strings.ToLower(strings.TrimSpace(profession))
}
