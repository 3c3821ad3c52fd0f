// Package router đăng ký các route thuộc domain Subscriber.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "github.com/JoWinner/novu/internal/api/router"
	subhdl "github.com/JoWinner/novu/internal/api/subscriber/handler"
)

// Register đăng ký tất cả route subscriber lên v1.
// Subscriber là danh bạ do admin quản trị: mở đầy đủ CRUD, kể cả xóa hàng loạt
// và các thao tác find-one-and-update/delete cho tooling dọn dữ liệu.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	subscriberHandler, err := subhdl.NewSubscriberHandler()
	if err != nil {
		return fmt.Errorf("create subscriber handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/subscriber", subscriberHandler, apirouter.ReadWriteConfig)
	return nil
}
