package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JoWinner/novu/internal/common"
)

// EnvironmentContextMiddleware middleware để quản lý environment context (tenant).
// - Đọc X-Environment-ID từ header
// - Validate định dạng ObjectID
// - Lưu active_environment_id vào context để handler/service sử dụng
// Middleware này KHÔNG bắt buộc header: route không cần tenant (health, ...) vẫn đi qua được.
// Route cần tenant dùng thêm RequireEnvironment.
func EnvironmentContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		envIDStr := c.Get("X-Environment-ID")
		if envIDStr == "" {
			return c.Next()
		}

		envID, err := primitive.ObjectIDFromHex(envIDStr)
		if err != nil {
			return HandleError(c, common.NewError(
				common.ErrCodeValidationFormat,
				"X-Environment-ID không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)",
				common.StatusBadRequest,
				err,
			))
		}

		c.Locals("active_environment_id", envID.Hex())
		return c.Next()
	}
}

// RequireEnvironment middleware bắt buộc request phải có environment context.
// Dùng cho các route thao tác dữ liệu theo tenant (message, feed, subscriber, template).
func RequireEnvironment() fiber.Handler {
	return func(c fiber.Ctx) error {
		envIDStr, ok := c.Locals("active_environment_id").(string)
		if !ok || envIDStr == "" {
			return HandleError(c, common.ErrMissingEnvironment)
		}
		return c.Next()
	}
}

// HandleError trả về error response và dừng chain (không gọi c.Next())
func HandleError(c fiber.Ctx, err error) error {
	HandleErrorResponse(c, err)
	return nil
}
