// Package router đăng ký các route thuộc domain Template.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	feedsvc "github.com/JoWinner/novu/internal/api/feed/service"
	messagesvc "github.com/JoWinner/novu/internal/api/message/service"
	"github.com/JoWinner/novu/internal/api/middleware"
	apirouter "github.com/JoWinner/novu/internal/api/router"
	subsvc "github.com/JoWinner/novu/internal/api/subscriber/service"
	tplhdl "github.com/JoWinner/novu/internal/api/template/handler"
)

// Register đăng ký tất cả route template lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	feedService, err := feedsvc.NewFeedService()
	if err != nil {
		return fmt.Errorf("create feed service: %w", err)
	}
	subscriberService, err := subsvc.NewSubscriberService()
	if err != nil {
		return fmt.Errorf("create subscriber service: %w", err)
	}
	messageService, err := messagesvc.NewMessageService(feedService, subscriberService)
	if err != nil {
		return fmt.Errorf("create message service: %w", err)
	}

	templateHandler, err := tplhdl.NewTemplateHandler(messageService)
	if err != nil {
		return fmt.Errorf("create template handler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/template", templateHandler, apirouter.RegistryConfig)

	// Gán feed cho template và gán lại feed cho các message đã sinh từ template
	apirouter.RegisterRouteWithMiddleware(v1, "/template", "PUT", "/feed-association/:id",
		[]fiber.Handler{middleware.RequireEnvironment()}, templateHandler.HandleUpdateFeedAssociation)

	return nil
}
