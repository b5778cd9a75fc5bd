package services

import (
	"context"
	"strings"
	"time"

	"evolv/backend/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sweeper deletes challenges past their computed expiry. It runs on its own
// schedule, decoupled from request handling, and works off the snapshot of
// challenges fetched at sweep start; challenges created mid-sweep are picked
// up on the next run.
type Sweeper struct {
	DB       *gorm.DB
	Log      *logrus.Logger
	Interval time.Duration
}

// Start launches the periodic sweep until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(time.Now())
			}
		}
	}()
}

// RunOnce scans every stored challenge and deletes the expired ones,
// returning the deletion count. A failure on one challenge is logged and
// never aborts the rest of the sweep.
func (s *Sweeper) RunOnce(now time.Time) int {
	s.Log.Info("starting challenge cleanup")

	var all []models.Challenge
	if err := s.DB.Find(&all).Error; err != nil {
		s.Log.WithError(err).Error("challenge cleanup: listing challenges failed")
		return 0
	}

	deleted := 0
	for _, ch := range all {
		if !s.isExpired(&ch, now) {
			continue
		}
		if err := s.DB.Delete(&models.Challenge{}, "id = ?", ch.ID).Error; err != nil {
			s.Log.WithError(err).WithField("id", ch.ID).Error("error deleting challenge")
			continue
		}
		deleted++
		s.Log.WithField("id", ch.ID).Debug("deleted expired challenge")
	}

	s.Log.WithField("deleted", deleted).Info("challenge cleanup completed")
	return deleted
}

func (s *Sweeper) isExpired(ch *models.Challenge, now time.Time) bool {
	duration := strings.TrimSpace(ch.Duration)
	if ch.CreatedAt.IsZero() || duration == "" {
		s.Log.WithField("id", ch.ID).Warn("skipping challenge: missing createdAt or duration")
		return false
	}

	expires, err := ComputeExpiry(ch.CreatedAt, duration)
	if err != nil {
		s.Log.WithFields(logrus.Fields{
			"id":       ch.ID,
			"duration": ch.Duration,
		}).Warn("cannot parse challenge duration, skipping")
		return false
	}
	return expires.Before(now)
}
