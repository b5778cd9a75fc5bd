package controllers

import (
	"errors"
	"strings"

	"evolv/backend/models"
	"evolv/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

type usernameUpdateRequest struct {
	CurrentUsername string `json:"currentUsername"`
	CurrentPassword string `json:"currentPassword"`
	NewUsername     string `json:"newUsername"`
}

type passwordUpdateRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (sc *SettingsController) GetInterests(c *fiber.Ctx) error {
	var interests []models.VideoInterest
	if err := sc.DB.Where("username = ?", c.Params("username")).Find(&interests).Error; err != nil {
		return utils.InternalError(c, "Error fetching interests")
	}
	return c.JSON(interests)
}

func (sc *SettingsController) AddInterest(c *fiber.Ctx) error {
	var interest models.VideoInterest
	if err := c.BodyParser(&interest); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(interest.Username) == "" || strings.TrimSpace(interest.Interest) == "" {
		return utils.BadRequest(c, "username and interest are required")
	}

	interest.ID = ""
	if err := sc.DB.Create(&interest).Error; err != nil {
		return utils.InternalError(c, "Error adding interest")
	}
	return c.Status(fiber.StatusCreated).JSON(interest)
}

func (sc *SettingsController) DeleteInterest(c *fiber.Ctx) error {
	if err := sc.DB.Delete(&models.VideoInterest{}, "id = ?", c.Params("id")).Error; err != nil {
		return utils.InternalError(c, "Error deleting interest")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateUsername renames a user everywhere their name is denormalized:
// users, interests, todos, deletion counts and challenges.
func (sc *SettingsController) UpdateUsername(c *fiber.Ctx) error {
	var req usernameUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	err := sc.DB.Where("username = ? AND password = ?", req.CurrentUsername, req.CurrentPassword).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Text(c, fiber.StatusUnauthorized, "Incorrect credentials")
	}
	if err != nil {
		return utils.InternalError(c, "Error updating username")
	}

	var taken models.User
	if err := sc.DB.Where("username = ?", req.NewUsername).First(&taken).Error; err == nil {
		return utils.BadRequest(c, "Username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalError(c, "Error updating username")
	}

	old, renamed := user.Username, req.NewUsername
	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.User{},
			&models.VideoInterest{},
			&models.Todo{},
			&models.DeletionCount{},
			&models.Challenge{},
		} {
			if err := tx.Model(model).Where("username = ?", old).
				Update("username", renamed).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.InternalError(c, "Error updating username")
	}

	return c.SendString("Username updated successfully")
}

func (sc *SettingsController) UpdatePassword(c *fiber.Ctx) error {
	var req passwordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	err := sc.DB.Where("username = ? AND password = ?", req.Username, req.CurrentPassword).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Text(c, fiber.StatusUnauthorized, "Incorrect current password")
	}
	if err != nil {
		return utils.InternalError(c, "Error updating password")
	}

	if err := sc.DB.Model(&user).Update("password", req.NewPassword).Error; err != nil {
		return utils.InternalError(c, "Error updating password")
	}
	return c.SendString("Password updated successfully")
}
