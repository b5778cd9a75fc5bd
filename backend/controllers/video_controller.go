package controllers

import (
	"evolv/backend/models"
	"evolv/backend/services"
	"evolv/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VideoController struct {
	DB      *gorm.DB
	YouTube *services.YouTubeClient
}

func NewVideoController(db *gorm.DB, yt *services.YouTubeClient) *VideoController {
	return &VideoController{DB: db, YouTube: yt}
}

// GetVideosByUsername gathers recommendations across all of the user's
// interests, deduplicated by videoId and capped at MaxVideoResults total.
func (vc *VideoController) GetVideosByUsername(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return utils.BadRequest(c, "username is required")
	}

	var interests []models.VideoInterest
	if err := vc.DB.Where("username = ?", username).Find(&interests).Error; err != nil {
		return utils.InternalError(c, "Error fetching interests")
	}

	seen := make(map[string]bool)
	combined := make([]services.Video, 0, services.MaxVideoResults)
	for _, interest := range interests {
		for _, video := range vc.YouTube.VideosForInterest(interest.Interest) {
			if seen[video.VideoID] {
				continue
			}
			seen[video.VideoID] = true
			combined = append(combined, video)
			if len(combined) >= services.MaxVideoResults {
				return c.JSON(combined)
			}
		}
	}
	return c.JSON(combined)
}
