package handlers

import (
	"strconv"

	"github.com/ascend-app/ascend-api/internal/database"
	"github.com/ascend-app/ascend-api/internal/middleware"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetFeed returns one feed scope's posts, newest first, with reactions and
// authors preloaded.
func GetFeed(c *fiber.Ctx) error {
	scope := c.Params("type")
	if scope != models.FeedCircle && scope != models.FeedFollow {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Feed type must be circle or follow",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	var posts []models.Post
	if err := database.DB.Where("visibility = ?", scope).
		Preload("User").
		Preload("Reactions").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch feed",
		})
	}

	return c.JSON(fiber.Map{"data": posts, "page": page, "limit": limit})
}

func CreatePost(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	switch req.Kind {
	case models.PostStatus, models.PostPhoto, models.PostAudio, models.PostCheckin, models.PostGoal:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post type",
		})
	}
	if req.Visibility != models.FeedCircle && req.Visibility != models.FeedFollow {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Visibility must be circle or follow",
		})
	}

	post := models.Post{
		UserID:      userID,
		Kind:        req.Kind,
		Visibility:  req.Visibility,
		Content:     req.Content,
		MediaURL:    req.MediaURL,
		ActionTitle: req.ActionTitle,
		GoalTitle:   req.GoalTitle,
		GoalColor:   req.GoalColor,
		Streak:      req.Streak,
	}

	if err := database.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create post",
		})
	}

	database.DB.Preload("User").First(&post, "id = ?", post.ID)

	WS.Broadcast(post.Visibility, userID, WSEvent{
		Type:   EventPostCreated,
		Feed:   post.Visibility,
		UserID: userID.String(),
		Data:   post,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": post})
}

// ReactToPost appends an emoji reaction to a post and notifies its author.
func ReactToPost(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var req models.ReactRequest
	if err := c.BodyParser(&req); err != nil || req.Emoji == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Emoji is required",
		})
	}

	var post models.Post
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}

	reaction := models.Reaction{
		PostID: postID,
		UserID: userID,
		Emoji:  req.Emoji,
	}
	if err := database.DB.Create(&reaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add reaction",
		})
	}

	if post.UserID != userID {
		var reactor models.User
		database.DB.First(&reactor, userID)
		title := "New reaction!"
		body := reactor.Name + " reacted " + req.Emoji + " to your post"
		CreateNotification(post.UserID, "reaction_received", title, body, map[string]interface{}{
			"postId": postID.String(),
		})
	}

	WS.Broadcast(post.Visibility, userID, WSEvent{
		Type:   EventReactionAdded,
		Feed:   post.Visibility,
		UserID: userID.String(),
		Data:   reaction,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": reaction})
}
