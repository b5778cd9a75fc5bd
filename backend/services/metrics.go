package services

import (
	"errors"
	"time"

	"evolv/backend/models"

	"gorm.io/gorm"
)

type DeletionMetrics struct {
	Total    int `json:"totalDeletions"`
	LastDay  int `json:"deletionsLastDay"`
	LastWeek int `json:"deletionsLastWeek"`
}

// ComputeDeletionMetrics derives rolling counts from a deletion history:
// within 24 hours of now and within 7 days of now. A deletion inside the last
// day is by definition also inside the last week.
func ComputeDeletionMetrics(dates []time.Time, now time.Time) DeletionMetrics {
	metrics := DeletionMetrics{Total: len(dates)}
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.AddDate(0, 0, -7)

	for _, d := range dates {
		if d.After(dayAgo) {
			metrics.LastDay++
		}
		if d.After(weekAgo) {
			metrics.LastWeek++
		}
	}
	return metrics
}

// RecordDeletion appends ts to the user's deletion history, creating the
// record with a single-element history on the first deletion.
func RecordDeletion(db *gorm.DB, username string, ts time.Time) (*models.DeletionCount, error) {
	var count models.DeletionCount
	err := db.Where("username = ?", username).First(&count).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		count = models.DeletionCount{
			Username:      username,
			DeletionDates: models.TimeList{ts},
		}
		if err := db.Create(&count).Error; err != nil {
			return nil, err
		}
		return &count, nil
	}
	if err != nil {
		return nil, err
	}

	count.DeletionDates = append(count.DeletionDates, ts)
	if err := db.Save(&count).Error; err != nil {
		return nil, err
	}
	return &count, nil
}
