// Package router đăng ký các route thuộc domain Message.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	msghdl "github.com/JoWinner/novu/internal/api/message/handler"
	"github.com/JoWinner/novu/internal/api/middleware"
	apirouter "github.com/JoWinner/novu/internal/api/router"
)

// Register đăng ký tất cả route message lên v1.
// CRUD chỉ cho đọc: mọi thao tác ghi đi qua các endpoint chuyên biệt bên dưới
// (trigger, status, seen, soft-delete) để giữ bất biến của domain.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	messageHandler, err := msghdl.NewMessageHandler()
	if err != nil {
		return fmt.Errorf("create message handler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/message", messageHandler, apirouter.ReadOnlyConfig)

	requireEnv := []fiber.Handler{middleware.RequireEnvironment()}

	// Ghi
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "POST", "/trigger", requireEnv, messageHandler.HandleTrigger)
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "POST", "/status/:id", requireEnv, messageHandler.HandleUpdateStatus)
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "POST", "/seen/:id", requireEnv, messageHandler.HandleChangeSeen)
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "DELETE", "/delete-by-id/:id", requireEnv, messageHandler.HandleSoftDelete)

	// Feed phía subscriber
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "GET", "/feed", requireEnv, messageHandler.HandleSubscriberFeed)
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "GET", "/feed/count", requireEnv, messageHandler.HandleFeedCount)
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "GET", "/feed/unseen-count", requireEnv, messageHandler.HandleUnseenCount)

	// Activity phía environment
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "GET", "/activity/feed", requireEnv, messageHandler.HandleActivityFeed)
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "GET", "/activity/stats", requireEnv, messageHandler.HandleActivityStats)

	// Khác
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "GET", "/deleted", requireEnv, messageHandler.HandleFindDeleted)
	apirouter.RegisterRouteWithMiddleware(v1, "/message", "GET", "/by-notifications", requireEnv, messageHandler.HandleFindByNotificationIds)

	return nil
}
