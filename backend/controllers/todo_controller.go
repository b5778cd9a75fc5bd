package controllers

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"evolv/backend/models"
	"evolv/backend/services"
	"evolv/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TodoController struct {
	DB *gorm.DB
}

func NewTodoController(db *gorm.DB) *TodoController {
	return &TodoController{DB: db}
}

type listTasksRequest struct {
	Username  string `json:"username"`
	Tag       string `json:"tag"`
	Completed *bool  `json:"completed"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

// GetTodos lists a user's tasks, optionally filtered by tag and completion.
func (tc *TodoController) GetTodos(c *fiber.Ctx) error {
	var req listTasksRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if strings.TrimSpace(req.Username) == "" {
		return utils.BadRequest(c, "username is required")
	}

	query := tc.DB.Where("username = ?", req.Username)
	if req.Completed != nil {
		query = query.Where("completed = ?", *req.Completed)
	}

	var tasks []models.Todo
	if err := query.Find(&tasks).Error; err != nil {
		return utils.InternalError(c, "Error fetching tasks")
	}

	// Tags live in a JSON column, so tag filtering happens here rather than
	// in SQL.
	if req.Tag != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			for _, tag := range t.Tags {
				if tag == req.Tag {
					filtered = append(filtered, t)
					break
				}
			}
		}
		tasks = filtered
	}

	return c.JSON(tasks)
}

// AddTodo creates a task. Period must be onetime or permanent.
func (tc *TodoController) AddTodo(c *fiber.Ctx) error {
	var req models.Todo
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if strings.TrimSpace(req.Username) == "" {
		return utils.BadRequest(c, "username is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return utils.BadRequest(c, "Task description cannot be empty")
	}
	period := strings.ToLower(req.Period)
	if period != "onetime" && period != "permanent" {
		return utils.BadRequest(c, "Invalid period value")
	}

	todo := models.Todo{
		Username:  req.Username,
		Title:     strings.TrimSpace(req.Title),
		Period:    period,
		Tags:      req.Tags,
		Deadline:  req.Deadline,
		Completed: false,
	}
	if todo.Tags == nil {
		todo.Tags = models.StringList{}
	}

	if err := tc.DB.Create(&todo).Error; err != nil {
		return utils.InternalError(c, "Error adding task")
	}
	return c.JSON(todo)
}

// CompleteTask marks a task completed, once.
func (tc *TodoController) CompleteTask(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return utils.BadRequest(c, "username is required")
	}

	var task models.Todo
	err := tc.DB.Where("id = ? AND username = ?", c.Params("id"), username).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Task not found")
	}
	if err != nil {
		return utils.InternalError(c, "Error completing task")
	}

	if task.Completed {
		return utils.BadRequest(c, "Task already completed")
	}

	now := time.Now()
	task.Completed = true
	task.CompletedAt = &now
	if err := tc.DB.Save(&task).Error; err != nil {
		return utils.InternalError(c, "Error completing task")
	}
	return c.SendString("Task marked as completed")
}

// DeleteTodo removes a one-time task and records the deletion timestamp in
// the user's deletion history. The date arrives as an ISO-8601 query param.
func (tc *TodoController) DeleteTodo(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return utils.BadRequest(c, "username is required")
	}

	deletionDate, err := time.Parse(time.RFC3339, c.Query("date"))
	if err != nil {
		return utils.BadRequest(c, "Invalid date format. Please send ISO-8601 string.")
	}

	var task models.Todo
	err = tc.DB.Where("id = ? AND username = ?", c.Params("id"), username).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Task not found")
	}
	if err != nil {
		return utils.InternalError(c, "Error deleting task")
	}

	if !strings.EqualFold(task.Period, "onetime") {
		return utils.BadRequest(c, "Cannot delete permanent tasks")
	}

	if err := tc.DB.Delete(&models.Todo{}, "id = ?", task.ID).Error; err != nil {
		return utils.InternalError(c, "Error deleting task")
	}

	count, err := services.RecordDeletion(tc.DB, username, deletionDate)
	if err != nil {
		return utils.InternalError(c, "Error recording deletion")
	}

	return c.SendString(fmt.Sprintf("Task deleted. %s total deletions: %d.",
		username, len(count.DeletionDates)))
}

// GetDeletionCounts returns total / last-24h / last-7d deletion metrics.
// Users with no history get zeros, not an error.
func (tc *TodoController) GetDeletionCounts(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(services.DeletionMetrics{})
	}

	var count models.DeletionCount
	err := tc.DB.Where("username = ?", username).First(&count).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(services.DeletionMetrics{})
	}
	if err != nil {
		return utils.InternalError(c, "Error fetching deletion metrics")
	}

	return c.JSON(services.ComputeDeletionMetrics(count.DeletionDates, time.Now()))
}

type completionStat struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// GetCompletionStats groups a user's completed tasks per completion date,
// ascending.
func (tc *TodoController) GetCompletionStats(c *fiber.Ctx) error {
	var req usernameRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		return utils.BadRequest(c, "username is required")
	}

	var tasks []models.Todo
	err := tc.DB.Where("username = ? AND completed = ?", req.Username, true).Find(&tasks).Error
	if err != nil {
		return utils.InternalError(c, "Error fetching completion stats")
	}

	counts := make(map[string]int)
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		counts[t.CompletedAt.UTC().Format("2006-01-02")]++
	}

	stats := make([]completionStat, 0, len(counts))
	for date, n := range counts {
		stats = append(stats, completionStat{Date: date, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })

	return c.JSON(stats)
}

// GetTaskDates returns the distinct deadline dates across a user's tasks.
func (tc *TodoController) GetTaskDates(c *fiber.Ctx) error {
	var req usernameRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		return utils.BadRequest(c, "username is required")
	}

	var tasks []models.Todo
	if err := tc.DB.Where("username = ?", req.Username).Find(&tasks).Error; err != nil {
		return utils.InternalError(c, "Error fetching task dates")
	}

	seen := make(map[string]bool)
	var dates []string
	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		d := t.Deadline.UTC().Format("2006-01-02")
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	return c.JSON(dates)
}
