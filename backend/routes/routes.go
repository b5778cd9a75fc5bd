package routes

import (
	"evolv/backend/config"
	"evolv/backend/controllers"
	"evolv/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/auth/login", authController.Login)
	app.Post("/auth/signup", authController.Signup)

	// Challenge routes
	challengeController := controllers.NewChallengeController(db)
	challenges := app.Group("/api/challenges")
	challenges.Post("/", challengeController.GetAllChallenges)
	challenges.Post("/add", challengeController.AddChallenge)
	challenges.Put("/applause", challengeController.UpdateApplause)
	challenges.Post("/active", challengeController.IsChallengeActive)
	challenges.Post("/:id/uploadProof", challengeController.UploadProof)
	challenges.Post("/:id/progress", challengeController.AddProgress)
	challenges.Post("/:id/streak", challengeController.GetCurrentStreak)
	challenges.Put("/:id/markCompleted", challengeController.MarkCompleted)

	// Task routes
	todoController := controllers.NewTodoController(db)
	tasks := app.Group("/api/tasks")
	tasks.Get("/count", todoController.GetDeletionCounts)
	tasks.Post("/", todoController.GetTodos)
	tasks.Post("/add", todoController.AddTodo)
	tasks.Post("/completion-stats", todoController.GetCompletionStats)
	tasks.Post("/dates", todoController.GetTaskDates)
	tasks.Patch("/:id/complete", todoController.CompleteTask)
	tasks.Delete("/:id", todoController.DeleteTodo)

	// Quiz routes
	quizController := controllers.NewQuizController(db)
	quizzes := app.Group("/api/quizzes")
	quizzes.Get("/leaderboard", quizController.GetLeaderboard)
	quizzes.Post("/", quizController.GetQuizByProfession)
	quizzes.Post("/score", quizController.SubmitScore)

	// Settings routes
	settingsController := controllers.NewSettingsController(db)
	settings := app.Group("/api/settings")
	settings.Get("/interests/:username", settingsController.GetInterests)
	settings.Post("/interests", settingsController.AddInterest)
	settings.Delete("/interests/:id", settingsController.DeleteInterest)
	settings.Put("/username", settingsController.UpdateUsername)
	settings.Put("/password", settingsController.UpdatePassword)

	// Chat proxy routes
	ollama := services.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, logger)
	chatController := controllers.NewChatController(ollama)
	app.Post("/api/chat", chatController.Chat)
	app.Post("/api/chat/stream", chatController.StreamChat)

	// Video recommendation routes
	youtube := services.NewYouTubeClient(cfg.YouTubeAPIKeys, cfg.VideoCacheTTL, logger)
	videoController := controllers.NewVideoController(db, youtube)
	app.Get("/api/videos/all", videoController.GetVideosByUsername)
}
