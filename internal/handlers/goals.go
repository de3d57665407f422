package handlers

import (
	"github.com/ascend-app/ascend-api/internal/database"
	"github.com/ascend-app/ascend-api/internal/middleware"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetGoals returns the user's goals, newest first, with milestones preloaded.
func GetGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	return c.JSON(fiber.Map{"data": goals})
}

func CreateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	goal := models.Goal{
		UserID:   userID,
		Title:    req.Title,
		Metric:   req.Metric,
		Deadline: req.Deadline,
		Why:      req.Why,
		Status:   models.StatusOnTrack,
		Category: req.Category,
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": goal})
}

func UpdateGoal(c *fiber.Ctx) error {
	goal, ok := findUserGoal(c)
	if !ok {
		return nil
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Metric != nil {
		goal.Metric = *req.Metric
	}
	if req.Deadline != nil {
		goal.Deadline = *req.Deadline
	}
	if req.Why != nil {
		goal.Why = req.Why
	}
	if req.Consistency != nil {
		if *req.Consistency < 0 || *req.Consistency > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Consistency must be between 0 and 100",
			})
		}
		goal.Consistency = *req.Consistency
	}
	if req.Status != nil {
		switch *req.Status {
		case models.StatusOnTrack, models.StatusNeedsAttention, models.StatusCritical:
			goal.Status = *req.Status
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal status",
			})
		}
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}
	if req.Category != nil {
		goal.Category = req.Category
	}

	if err := database.DB.Save(goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update goal",
		})
	}

	return c.JSON(fiber.Map{"data": goal})
}

func DeleteGoal(c *fiber.Ctx) error {
	goal, ok := findUserGoal(c)
	if !ok {
		return nil
	}

	// Milestones never outlive their parent goal
	database.DB.Where("goal_id = ?", goal.ID).Delete(&models.Milestone{})
	if err := database.DB.Delete(goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// findUserGoal resolves the :id route param to a goal owned by the caller.
// On failure the error response has already been written and ok is false.
func findUserGoal(c *fiber.Ctx) (*models.Goal, bool) {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
		return nil, false
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
		return nil, false
	}

	return &goal, true
}
