package handlers

import (
	"time"

	"github.com/ascend-app/ascend-api/internal/database"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/ascend-app/ascend-api/internal/registry"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReplaceMilestones swaps a goal's milestone list wholesale. The planning
// flow always submits the complete list; there is no merge.
func ReplaceMilestones(c *fiber.Ctx) error {
	goal, ok := findUserGoal(c)
	if !ok {
		return nil
	}

	var req models.ReplaceMilestonesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	milestones := make([]models.Milestone, len(req.Milestones))
	for i, in := range req.Milestones {
		milestones[i] = models.Milestone{
			GoalID:      goal.ID,
			Title:       in.Title,
			TargetDate:  in.TargetDate,
			TargetValue: in.TargetValue,
			Unit:        in.Unit,
			Completed:   in.Completed,
			Order:       in.Order,
		}
	}

	if err := database.DB.Where("goal_id = ?", goal.ID).Delete(&models.Milestone{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to replace milestones",
		})
	}
	if len(milestones) > 0 {
		if err := database.DB.Create(&milestones).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to replace milestones",
			})
		}
	}

	return c.JSON(fiber.Map{"data": milestones})
}

// PlanMilestones auto-generates 3–5 checkpoints between now and the goal's
// deadline and replaces the goal's list with them.
func PlanMilestones(c *fiber.Ctx) error {
	goal, ok := findUserGoal(c)
	if !ok {
		return nil
	}

	targetDate, err := time.Parse("2006-01-02", goal.Deadline)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Goal has no parseable deadline",
		})
	}

	var req struct {
		TargetValue *float64 `json:"targetValue"`
		Unit        *string  `json:"unit"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	category := ""
	if goal.Category != nil {
		category = *goal.Category
	}
	milestones := registry.PlanMilestones(registry.PlanInput{
		GoalID:      goal.ID,
		Title:       goal.Title,
		Category:    category,
		TargetDate:  targetDate,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
	}, time.Now())

	if err := database.DB.Where("goal_id = ?", goal.ID).Delete(&models.Milestone{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to plan milestones",
		})
	}
	if err := database.DB.Create(&milestones).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to plan milestones",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": milestones})
}

// ToggleMilestone flips one milestone's completion flag. Goal status and
// consistency are untouched.
func ToggleMilestone(c *fiber.Ctx) error {
	_, milestone, ok := findGoalMilestone(c)
	if !ok {
		return nil
	}

	milestone.Completed = !milestone.Completed
	if err := database.DB.Save(milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle milestone",
		})
	}

	return c.JSON(fiber.Map{"data": milestone})
}

func UpdateMilestone(c *fiber.Ctx) error {
	_, milestone, ok := findGoalMilestone(c)
	if !ok {
		return nil
	}

	var req models.UpdateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		milestone.Title = *req.Title
	}
	if req.TargetDate != nil {
		milestone.TargetDate = *req.TargetDate
	}
	if req.TargetValue != nil {
		milestone.TargetValue = req.TargetValue
	}
	if req.Unit != nil {
		milestone.Unit = req.Unit
	}
	if req.Order != nil {
		milestone.Order = *req.Order
	}

	if err := database.DB.Save(milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update milestone",
		})
	}

	return c.JSON(fiber.Map{"data": milestone})
}

func DeleteMilestone(c *fiber.Ctx) error {
	_, milestone, ok := findGoalMilestone(c)
	if !ok {
		return nil
	}

	if err := database.DB.Delete(milestone).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete milestone",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// findGoalMilestone resolves the :id/:milestoneId route params. On failure the
// error response has already been written and ok is false.
func findGoalMilestone(c *fiber.Ctx) (*models.Goal, *models.Milestone, bool) {
	goal, ok := findUserGoal(c)
	if !ok {
		return nil, nil, false
	}

	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid milestone ID",
		})
		return nil, nil, false
	}

	var milestone models.Milestone
	if err := database.DB.Where("id = ? AND goal_id = ?", milestoneID, goal.ID).First(&milestone).Error; err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Milestone not found",
		})
		return nil, nil, false
	}

	return goal, &milestone, true
}
