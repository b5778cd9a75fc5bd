package services

import (
	"sort"
	"time"

	"evolv/backend/models"
)

type StreakResult struct {
	Streak  int `json:"streak"`
	Entries int `json:"entries"`
	Points  int `json:"points"`
}

// ComputeStreak counts consecutive calendar days ending at today that have at
// least one progress entry. Points are one per entry, so multiple check-ins
// on the same day all count toward points but the day is one streak step.
func ComputeStreak(entries []models.ProgressEntry, today time.Time) StreakResult {
	if len(entries) == 0 {
		return StreakResult{}
	}

	seen := make(map[string]bool)
	var dates []time.Time
	for _, e := range entries {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		key := d.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	streak := 0
	expected := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, d := range dates {
		if d.Equal(expected) {
			streak++
			expected = expected.AddDate(0, 0, -1)
		} else if d.Before(expected) {
			break
		}
	}

	return StreakResult{
		Streak:  streak,
		Entries: len(entries),
		Points:  len(entries),
	}
}
