package router

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

// TestReadOnlyConfig kiểm tra config chỉ đọc không mở operation ghi nào
func TestReadOnlyConfig(t *testing.T) {
	cfg := ReadOnlyConfig

	assert.False(t, cfg.InsOne, "ReadOnlyConfig không được cho phép insert-one")
	assert.False(t, cfg.InsMany, "ReadOnlyConfig không được cho phép insert-many")
	assert.False(t, cfg.UpdOne, "ReadOnlyConfig không được cho phép update-one")
	assert.False(t, cfg.UpdById, "ReadOnlyConfig không được cho phép update-by-id")
	assert.False(t, cfg.DelOne, "ReadOnlyConfig không được cho phép delete-one")
	assert.False(t, cfg.DelById, "ReadOnlyConfig không được cho phép delete-by-id")
	assert.False(t, cfg.Upsert, "ReadOnlyConfig không được cho phép upsert")

	assert.True(t, cfg.Find, "ReadOnlyConfig phải cho phép find")
	assert.True(t, cfg.FindById, "ReadOnlyConfig phải cho phép find-by-id")
	assert.True(t, cfg.Paginate, "ReadOnlyConfig phải cho phép phân trang")
	assert.True(t, cfg.Count, "ReadOnlyConfig phải cho phép count")
	assert.True(t, cfg.Exists, "ReadOnlyConfig phải cho phép exists")
}

// TestRegistryConfig kiểm tra config danh mục chặn các operation xóa hàng loạt
func TestRegistryConfig(t *testing.T) {
	cfg := RegistryConfig

	assert.True(t, cfg.InsOne, "RegistryConfig phải cho phép insert-one")
	assert.True(t, cfg.UpdById, "RegistryConfig phải cho phép update-by-id")
	assert.True(t, cfg.DelById, "RegistryConfig phải cho phép delete-by-id")

	assert.False(t, cfg.DelOne, "RegistryConfig không được cho phép delete-one theo filter")
	assert.False(t, cfg.DelMany, "RegistryConfig không được cho phép delete-many")
	assert.False(t, cfg.FindDel, "RegistryConfig không được cho phép find-one-and-delete")
	assert.False(t, cfg.UpdMany, "RegistryConfig không được cho phép update-many")
}

// TestReadWriteConfig kiểm tra config quản trị mở đầy đủ operation
func TestReadWriteConfig(t *testing.T) {
	cfg := ReadWriteConfig

	assert.True(t, cfg.InsOne, "ReadWriteConfig phải cho phép insert-one")
	assert.True(t, cfg.InsMany, "ReadWriteConfig phải cho phép insert-many")
	assert.True(t, cfg.UpdOne, "ReadWriteConfig phải cho phép update-one")
	assert.True(t, cfg.UpdMany, "ReadWriteConfig phải cho phép update-many")
	assert.True(t, cfg.FindUpd, "ReadWriteConfig phải cho phép find-one-and-update")
	assert.True(t, cfg.DelOne, "ReadWriteConfig phải cho phép delete-one")
	assert.True(t, cfg.DelMany, "ReadWriteConfig phải cho phép delete-many")
	assert.True(t, cfg.FindDel, "ReadWriteConfig phải cho phép find-one-and-delete")
	assert.True(t, cfg.Upsert, "ReadWriteConfig phải cho phép upsert")
	assert.True(t, cfg.UpsMany, "ReadWriteConfig phải cho phép upsert-many")
	assert.True(t, cfg.Find, "ReadWriteConfig phải cho phép find")
	assert.True(t, cfg.Count, "ReadWriteConfig phải cho phép count")
}

// TestNewRoutePrefix kiểm tra prefix mặc định của API
func TestNewRoutePrefix(t *testing.T) {
	prefix := NewRoutePrefix()

	assert.Equal(t, "/api", prefix.Base, "Prefix cơ bản phải là /api")
	assert.Equal(t, "/api/v1", prefix.V1, "Prefix v1 phải là /api/v1")
}

// TestRegisterRouteWithMiddleware kiểm tra route được đăng ký đúng method và path
func TestRegisterRouteWithMiddleware(t *testing.T) {
	app := fiber.New()

	handler := func(c fiber.Ctx) error { return nil }
	RegisterRouteWithMiddleware(app, "/message", "GET", "/feed", nil, handler)
	RegisterRouteWithMiddleware(app, "/message", "POST", "/trigger", nil, handler)

	foundFeed := false
	foundTrigger := false
	for _, route := range app.GetRoutes() {
		if route.Method == "GET" && route.Path == "/message/feed" {
			foundFeed = true
		}
		if route.Method == "POST" && route.Path == "/message/trigger" {
			foundTrigger = true
		}
	}
	assert.True(t, foundFeed, "Route GET /message/feed phải được đăng ký trong group")
	assert.True(t, foundTrigger, "Route POST /message/trigger phải được đăng ký trong group")
}
