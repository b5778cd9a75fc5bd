package controllers

import (
	"errors"
	"strings"

	"evolv/backend/models"
	"evolv/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizController struct {
	DB *gorm.DB
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{DB: db}
}

type quizRequest struct {
	Profession string `json:"profession"`
}

type submitScoreRequest struct {
	Username   string `json:"username"`
	Profession string `json:"profession"`
	Score      int    `json:"score"`
}

// GetQuizByProfession looks a quiz up by its normalized profession key.
// No quiz for the profession is a 204, not an error.
func (qc *QuizController) GetQuizByProfession(c *fiber.Ctx) error {
	var req quizRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Profession) == "" {
		return utils.BadRequest(c, "profession is required")
	}

	var quiz models.Quiz
	err := qc.DB.Where("profession = ?", models.NormalizeProfession(req.Profession)).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err != nil {
		return utils.InternalError(c, "Error fetching quiz")
	}
	return c.JSON(quiz)
}

// SubmitScore records a score on the profession's leaderboard; only a
// strictly higher score replaces a stored one. Returns the full leaderboard.
func (qc *QuizController) SubmitScore(c *fiber.Ctx) error {
	var req submitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	username := strings.TrimSpace(req.Username)
	profession := models.NormalizeProfession(req.Profession)
	if username == "" || profession == "" || req.Score < 0 {
		return utils.BadRequest(c, "username, profession and a non-negative score are required")
	}

	var quiz models.Quiz
	err := qc.DB.Where("profession = ?", profession).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Quiz not found")
	}
	if err != nil {
		return utils.InternalError(c, "Error fetching quiz")
	}

	quiz.UpdateLeaderboard(username, req.Score)
	if err := qc.DB.Save(&quiz).Error; err != nil {
		return utils.InternalError(c, "Error saving score")
	}

	return c.JSON(quiz.Leaderboard)
}

// GetLeaderboard returns the leaderboard for a profession. A quiz with no
// scores yet answers with an empty mapping.
func (qc *QuizController) GetLeaderboard(c *fiber.Ctx) error {
	profession := models.NormalizeProfession(c.Query("profession"))
	if profession == "" {
		return utils.BadRequest(c, "profession is required")
	}

	var quiz models.Quiz
	err := qc.DB.Where("profession = ?", profession).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Quiz not found")
	}
	if err != nil {
		return utils.InternalError(c, "Error fetching leaderboard")
	}

	if quiz.Leaderboard == nil {
		quiz.Leaderboard = models.ScoreMap{}
	}
	return c.JSON(quiz.Leaderboard)
}
