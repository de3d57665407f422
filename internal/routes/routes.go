package routes

import (
	"github.com/ascend-app/ascend-api/internal/handlers"
	"github.com/ascend-app/ascend-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/auth/profile", handlers.GetProfile)

	actions := protected.Group("/actions")
	actions.Get("/daily", handlers.GetDailyActions)
	actions.Post("/", handlers.CreateAction)
	actions.Put("/:id/complete", handlers.CompleteAction)

	protected.Get("/streaks", handlers.GetStreaks)

	goals := protected.Group("/goals")
	goals.Get("/", handlers.GetGoals)
	goals.Post("/", handlers.CreateGoal)
	goals.Put("/:id", handlers.UpdateGoal)
	goals.Delete("/:id", handlers.DeleteGoal)

	goals.Put("/:id/milestones", handlers.ReplaceMilestones)
	goals.Post("/:id/milestones/plan", handlers.PlanMilestones)
	goals.Post("/:id/milestones/:milestoneId/toggle", handlers.ToggleMilestone)
	goals.Put("/:id/milestones/:milestoneId", handlers.UpdateMilestone)
	goals.Delete("/:id/milestones/:milestoneId", handlers.DeleteMilestone)

	protected.Get("/feed/:type", handlers.GetFeed)
	posts := protected.Group("/posts")
	posts.Post("/", handlers.CreatePost)
	posts.Post("/:id/react", handlers.ReactToPost)

	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	protected.Post("/device-token", handlers.RegisterDeviceToken)

	protected.Post("/upload", handlers.UploadMedia)

	// WebSocket for realtime feed updates
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws/feed/:type", websocket.New(handlers.HandleWebSocket))
}
