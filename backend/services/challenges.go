package services

import (
	"errors"
	"time"

	"evolv/backend/models"

	"gorm.io/gorm"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrOwnChallenge      = errors.New("cannot applaud your own challenge")
	ErrAlreadyApplauded  = errors.New("you have already applauded this challenge")
	ErrAlreadyCompleted  = errors.New("challenge already completed")
)

const applaudAttempts = 3

// ApplaudChallenge records a one-time applause by user on the challenge
// identified by (owner, text). The counter increment and the applaudedBy
// append land in one conditional UPDATE keyed on the fetched applause count,
// so two concurrent applause attempts by the same user cannot both commit.
// Losing the update to a different applauder just refetches and retries.
func ApplaudChallenge(db *gorm.DB, user, owner, text string) error {
	if user == owner {
		return ErrOwnChallenge
	}

	for attempt := 0; attempt < applaudAttempts; attempt++ {
		var ch models.Challenge
		err := db.Where("username = ? AND challenge = ?", owner, text).First(&ch).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		if err != nil {
			return err
		}

		for _, u := range ch.ApplaudedBy {
			if u == user {
				return ErrAlreadyApplauded
			}
		}

		res := db.Model(&models.Challenge{}).
			Where("id = ? AND applause = ?", ch.ID, ch.Applause).
			Updates(map[string]interface{}{
				"applause":     ch.Applause + 1,
				"applauded_by": append(ch.ApplaudedBy, user),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}
		// Someone else's applause landed between the read and the update.
	}
	return errors.New("applause conflict, please retry")
}

// MarkCompleted flips a challenge to completed. The transition is one-way:
// a second call reports ErrAlreadyCompleted and completed never reverts.
func MarkCompleted(db *gorm.DB, challengeID string) error {
	var ch models.Challenge
	err := db.Where("id = ?", challengeID).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrChallengeNotFound
	}
	if err != nil {
		return err
	}
	if ch.Completed {
		return ErrAlreadyCompleted
	}

	res := db.Model(&models.Challenge{}).
		Where("id = ? AND completed = ?", ch.ID, false).
		Update("completed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyCompleted
	}
	return nil
}

// HasActiveChallenge reports whether any non-completed challenge of owner is
// still inside its duration window at now, using the fixed-ratio parser. An
// unparsable duration contributes 0 days, so such a challenge is only active
// at its creation instant.
func HasActiveChallenge(db *gorm.DB, owner string, now time.Time) (bool, error) {
	var challenges []models.Challenge
	if err := db.Where("username = ?", owner).Find(&challenges).Error; err != nil {
		return false, err
	}

	for _, ch := range challenges {
		if ch.Completed {
			continue
		}
		days := ParseDurationDays(ch.Duration)
		end := ch.CreatedAt.AddDate(0, 0, days)
		if !end.Before(now) {
			return true, nil
		}
	}
	return false, nil
}
