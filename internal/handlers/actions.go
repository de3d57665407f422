package handlers

import (
	"log"
	"time"

	"github.com/ascend-app/ascend-api/internal/database"
	"github.com/ascend-app/ascend-api/internal/ledger"
	"github.com/ascend-app/ascend-api/internal/middleware"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetDailyActions returns the user's daily action list.
func GetDailyActions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var actions []models.Action
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&actions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch actions",
		})
	}

	return c.JSON(fiber.Map{"data": actions})
}

// CreateAction adds a new daily action. Fresh actions start incomplete with a
// zero streak.
func CreateAction(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateActionRequest
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

	action := models.Action{
		UserID: userID,
		Title:  req.Title,
		Time:   req.Time,
		Kind:   models.ActionCommitment,
	}
	if req.Kind != nil {
		switch *req.Kind {
		case models.ActionCommitment, models.ActionPerformance, models.ActionOneTime:
			action.Kind = *req.Kind
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid action type",
			})
		}
	}
	if req.GoalID != nil {
		goalID, err := uuid.Parse(*req.GoalID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid goal ID",
			})
		}
		var goal models.Goal
		if err := database.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		}
		action.GoalID = &goal.ID
		action.GoalTitle = goal.Title
	}
	if req.GoalTitle != nil {
		action.GoalTitle = *req.GoalTitle
	}

	if err := database.DB.Create(&action).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create action",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": action})
}

// CompleteAction applies the completion edge server-side: done flips to true,
// the streak increments exactly once, and an immutable completion record is
// appended. Repeat calls while already complete return current state without
// touching the streak. A missing body defaults to a private check so the pure
// mirror path stays a single round trip.
func CompleteAction(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	actionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid action ID",
		})
	}

	var action models.Action
	if err := database.DB.Where("id = ? AND user_id = ?", actionID, userID).First(&action).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Action not found",
		})
	}

	if action.Done {
		return c.JSON(fiber.Map{"data": action, "sharePrompt": false})
	}

	disp := ledger.Disposition{
		Visibility:  ledger.VisibilityPrivate,
		ContentType: ledger.ContentCheck,
	}
	var req models.CompleteActionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.Visibility != "" || req.ContentType != "" {
			disp = ledger.Disposition{
				Visibility:  ledger.Visibility(req.Visibility),
				ContentType: ledger.ContentType(req.ContentType),
			}
			if !disp.Valid() {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid disposition",
				})
			}
		}
	}

	now := time.Now()
	action.Done = true
	action.Streak++

	record := ledger.NewRecord(action, disp, now)
	if req.MediaURL != nil && record.Type == models.RecordPhoto {
		record.MediaURL = req.MediaURL
	}
	record.Category = req.Category

	if err := database.DB.Save(&action).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to complete action",
		})
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record completion",
		})
	}

	updateDailyStreak(userID, now)

	return c.JSON(fiber.Map{
		"data":        action,
		"record":      record,
		"sharePrompt": ledger.ShouldPromptShare(disp),
	})
}

// GetStreaks summarizes per-action streaks plus the user's daily streak.
func GetStreaks(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var actions []models.Action
	if err := database.DB.Where("user_id = ?", userID).Order("streak DESC").Find(&actions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch streaks",
		})
	}

	type actionStreak struct {
		ActionID uuid.UUID `json:"actionId"`
		Title    string    `json:"title"`
		Streak   int       `json:"streak"`
	}
	streaks := make([]actionStreak, len(actions))
	best := 0
	for i, a := range actions {
		streaks[i] = actionStreak{ActionID: a.ID, Title: a.Title, Streak: a.Streak}
		if a.Streak > best {
			best = a.Streak
		}
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"dailyStreak":   user.DailyStreak,
			"bestStreak":    best,
			"actionStreaks": streaks,
		},
	})
}

// updateDailyStreak bumps the user's day-level streak: consecutive active days
// extend it, a gap resets it to one.
func updateDailyStreak(userID uuid.UUID, now time.Time) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return
	}

	today := now.Truncate(24 * time.Hour)
	if user.LastActiveDate != nil {
		lastActive := user.LastActiveDate.Truncate(24 * time.Hour)
		daysSince := int(today.Sub(lastActive).Hours() / 24)
		if daysSince == 1 {
			user.DailyStreak++
		} else if daysSince > 1 {
			user.DailyStreak = 1
		}
	} else {
		user.DailyStreak = 1
	}
	user.LastActiveDate = &today

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("failed to update daily streak for user %s: %v", userID, err)
	}
}
