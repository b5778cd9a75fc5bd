package controllers

import (
	"errors"
	"strings"
	"time"

	"evolv/backend/models"
	"evolv/backend/services"
	"evolv/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChallengeController struct {
	DB *gorm.DB
}

func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{DB: db}
}

type listChallengesRequest struct {
	Username string `json:"username"`
}

type applauseRequest struct {
	Username      string `json:"username"`      // who is applauding
	UsernameOwner string `json:"usernameOwner"` // owner of the challenge
	Challenge     string `json:"challenge"`     // challenge text
}

type proofRequest struct {
	ImageURL string `json:"imageUrl"`
}

type progressRequest struct {
	Date   string `json:"date"` // "YYYY-MM-DD"
	Report string `json:"report"`
}

// GetAllChallenges returns every challenge, with hasApplauded computed for
// the requesting user when a username is supplied.
func (cc *ChallengeController) GetAllChallenges(c *fiber.Ctx) error {
	var req listChallengesRequest
	// The body is optional; without a username every hasApplauded stays false.
	_ = c.BodyParser(&req)

	var all []models.Challenge
	if err := cc.DB.Find(&all).Error; err != nil {
		return utils.InternalError(c, "Error fetching challenges")
	}

	currentUser := strings.TrimSpace(req.Username)
	for i := range all {
		if currentUser == "" {
			continue
		}
		for _, u := range all[i].ApplaudedBy {
			if u == currentUser {
				all[i].HasApplauded = true
				break
			}
		}
	}
	return c.JSON(all)
}

// AddChallenge creates a challenge with zero applause, no proof, no progress.
func (cc *ChallengeController) AddChallenge(c *fiber.Ctx) error {
	var ch models.Challenge
	if err := c.BodyParser(&ch); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if strings.TrimSpace(ch.Username) == "" ||
		strings.TrimSpace(ch.Challenge) == "" ||
		strings.TrimSpace(ch.Duration) == "" {
		return utils.BadRequest(c, "username, challenge and duration are required")
	}

	ch.ID = ""
	ch.CreatedAt = time.Now()
	ch.Applause = 0
	ch.Completed = false
	ch.ApplaudedBy = models.StringList{}
	ch.ProofImageUrls = models.StringList{}
	ch.ProgressEntries = models.ProgressEntryList{}

	if err := cc.DB.Create(&ch).Error; err != nil {
		return utils.InternalError(c, "Error adding challenge")
	}
	return c.JSON(ch)
}

// UpdateApplause handles the one-time-per-user upvote.
func (cc *ChallengeController) UpdateApplause(c *fiber.Ctx) error {
	var req applauseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.UsernameOwner) == "" ||
		strings.TrimSpace(req.Challenge) == "" {
		return utils.BadRequest(c, "Invalid request body")
	}

	err := services.ApplaudChallenge(cc.DB, req.Username, req.UsernameOwner, req.Challenge)
	switch {
	case errors.Is(err, services.ErrOwnChallenge):
		return utils.BadRequest(c, "Cannot applaud your own challenge")
	case errors.Is(err, services.ErrChallengeNotFound):
		return utils.NotFound(c, "Challenge not found")
	case errors.Is(err, services.ErrAlreadyApplauded):
		return utils.BadRequest(c, "You have already applauded this challenge")
	case err != nil:
		return utils.InternalError(c, "Error updating applause")
	}
	return c.SendString("Applause updated")
}

// IsChallengeActive reports whether the user has any non-completed challenge
// still inside its duration window.
func (cc *ChallengeController) IsChallengeActive(c *fiber.Ctx) error {
	var req listChallengesRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"active": false})
	}

	active, err := services.HasActiveChallenge(cc.DB, req.Username, time.Now())
	if err != nil {
		return utils.InternalError(c, "Error checking challenges")
	}
	return c.JSON(fiber.Map{"active": active})
}

// UploadProof appends a proof image URL to a challenge.
func (cc *ChallengeController) UploadProof(c *fiber.Ctx) error {
	var req proofRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		return utils.BadRequest(c, "Invalid imageUrl")
	}

	var ch models.Challenge
	err := cc.DB.Where("id = ?", c.Params("id")).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Challenge not found")
	}
	if err != nil {
		return utils.InternalError(c, "Error fetching challenge")
	}

	ch.ProofImageUrls = append(ch.ProofImageUrls, req.ImageURL)
	if err := cc.DB.Save(&ch).Error; err != nil {
		return utils.InternalError(c, "Error saving challenge")
	}
	return c.SendString("Proof image URL added")
}

// AddProgress appends a daily check-in. Multiple entries per date are fine;
// they all count toward points.
func (cc *ChallengeController) AddProgress(c *fiber.Ctx) error {
	var req progressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Report) == "" {
		return utils.BadRequest(c, "Invalid request body")
	}

	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
	}

	var ch models.Challenge
	err = cc.DB.Where("id = ?", c.Params("id")).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Challenge not found")
	}
	if err != nil {
		return utils.InternalError(c, "Error fetching challenge")
	}

	ch.ProgressEntries = append(ch.ProgressEntries, models.ProgressEntry{
		Date:   parsed.Format("2006-01-02"),
		Report: req.Report,
	})
	if err := cc.DB.Save(&ch).Error; err != nil {
		return utils.InternalError(c, "Error saving challenge")
	}
	return c.SendString("Progress entry added")
}

// GetCurrentStreak computes streak, entry count and points for a challenge.
func (cc *ChallengeController) GetCurrentStreak(c *fiber.Ctx) error {
	var ch models.Challenge
	err := cc.DB.Where("id = ?", c.Params("id")).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Challenge not found")
	}
	if err != nil {
		return utils.InternalError(c, "Error fetching challenge")
	}

	return c.JSON(services.ComputeStreak(ch.ProgressEntries, time.Now()))
}

// MarkCompleted flips a challenge to completed, once.
func (cc *ChallengeController) MarkCompleted(c *fiber.Ctx) error {
	err := services.MarkCompleted(cc.DB, c.Params("id"))
	switch {
	case errors.Is(err, services.ErrChallengeNotFound):
		return utils.NotFound(c, "Challenge not found")
	case errors.Is(err, services.ErrAlreadyCompleted):
		return utils.BadRequest(c, "Challenge already completed")
	case err != nil:
		return utils.InternalError(c, "Error updating challenge")
	}
	return c.SendString("Challenge marked completed")
}
