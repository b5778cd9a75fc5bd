package controllers

import (
	"errors"
	"strings"

	"evolv/backend/config"
	"evolv/backend/models"
	"evolv/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Credentials are compared in plain text. That is the contract this backend
// inherited and hardening it is explicitly out of scope.
type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	err := ac.DB.Where("username = ? AND password = ?", req.Username, req.Password).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "invalid",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Login failed",
		})
	}

	token, err := utils.GenerateToken(user.Username, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"status":     "verified",
		"profession": user.Profession,
		"token":      token,
	})
}

func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(user.Username) == "" || user.Password == "" {
		return utils.BadRequest(c, "username and password are required")
	}

	var existing models.User
	err := ac.DB.Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return c.SendString("username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalError(c, "Error creating user")
	}

	user.ID = ""
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalError(c, "Error creating user")
	}
	return c.SendString("signup successful")
}
