package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"campus-event-chat/enum"
	"campus-event-chat/handler"
	"campus-event-chat/middleware"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.AuthHandler
	*handler.UserHandler
	*handler.EventHandler
	*handler.NotificationHandler
	*handler.ChatHandler
	*handler.WebSocketHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
	rc.GetWebSocketRoute()
}

func (rc *ConfigRoute) GetPublicRoute() {
	rc.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	app := rc.App.Group("/api/v1")
	app.Post("/auth/register", rc.AuthHandler.RegisterUser)
	app.Post("/auth/login", rc.AuthHandler.LoginUser)
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1", rc.Middleware.JWTProtected, rc.Middleware.ExtractIdentity)

	organizer := rc.Middleware.RequireRole(enum.RoleOrganizer)
	student := rc.Middleware.RequireRole(enum.RoleStudent)

	app.Get("/auth/me", rc.UserHandler.GetProfile)

	app.Post("/events", organizer, rc.EventHandler.CreateEvent)
	app.Get("/events", rc.EventHandler.ListEvents)
	app.Get("/events/created", organizer, rc.EventHandler.ListCreatedEvents)
	app.Get("/events/registered", rc.EventHandler.ListRegisteredEvents)
	app.Post("/events/register", student, rc.EventHandler.RegisterForEvent)
	app.Get("/events/:id", rc.EventHandler.GetEventDetail)
	app.Delete("/events/:id", organizer, rc.EventHandler.DeleteEvent)

	app.Get("/notifications", rc.NotificationHandler.ListNotifications)
	app.Patch("/notifications/:id/read", rc.NotificationHandler.MarkAsRead)

	app.Get("/chats", rc.ChatHandler.GetChats)
	app.Get("/chats/:eventId/messages", rc.ChatHandler.GetMessages)
}

func (rc *ConfigRoute) GetWebSocketRoute() {
	rc.App.Get("/ws", rc.Middleware.WebSocketUpgrade, websocket.New(rc.WebSocketHandler.HandleWebSocket))
}
