// Package router đăng ký các route thuộc domain Feed.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	feedhdl "github.com/JoWinner/novu/internal/api/feed/handler"
	apirouter "github.com/JoWinner/novu/internal/api/router"
)

// Register đăng ký tất cả route feed lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	feedHandler, err := feedhdl.NewFeedHandler()
	if err != nil {
		return fmt.Errorf("create feed handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/feed", feedHandler, apirouter.RegistryConfig)
	return nil
}
