package tpldto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JoWinner/novu/internal/global"
)

// TestTemplateCreateInputValidation kiểm tra các rule validate khi tạo template
func TestTemplateCreateInputValidation(t *testing.T) {
	global.InitValidator()

	valid := TemplateCreateInput{
		Name:    "order-shipped",
		Channel: "email",
		Subject: "Don hang da duoc gui",
		Content: "Don hang {{orderId}} cua ban da duoc gui di",
	}

	t.Run("InputHopLe", func(t *testing.T) {
		err := global.Validate.Struct(valid)
		assert.NoError(t, err, "Input hợp lệ không được trả về lỗi validate")
	})

	t.Run("ThieuName", func(t *testing.T) {
		input := valid
		input.Name = ""
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Thiếu name phải trả về lỗi validate")
	})

	t.Run("NameChuaXSS", func(t *testing.T) {
		input := valid
		input.Name = "javascript:alert(1)"
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Name chứa pattern XSS phải trả về lỗi validate")
	})

	t.Run("ChannelKhongHopLe", func(t *testing.T) {
		input := valid
		input.Channel = "telegram"
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Channel ngoài danh sách cho phép phải trả về lỗi validate")
	})

	t.Run("FeedIDOptional", func(t *testing.T) {
		input := valid
		input.FeedID = primitive.NewObjectID().Hex()
		err := global.Validate.Struct(input)
		assert.NoError(t, err, "FeedId hex hợp lệ phải được chấp nhận")

		input.FeedID = "sai-dinh-dang"
		err = global.Validate.Struct(input)
		assert.Error(t, err, "FeedId không phải hex phải trả về lỗi validate")
	})
}

// TestTemplateFeedAssociationInputValidation kiểm tra input gán feed
func TestTemplateFeedAssociationInputValidation(t *testing.T) {
	global.InitValidator()

	t.Run("FeedIDRongDuocChapNhan", func(t *testing.T) {
		input := TemplateFeedAssociationInput{}
		err := global.Validate.Struct(input)
		assert.NoError(t, err, "FeedId rỗng nghĩa là gỡ khỏi feed, phải được chấp nhận")
	})

	t.Run("FeedIDHopLe", func(t *testing.T) {
		input := TemplateFeedAssociationInput{FeedID: primitive.NewObjectID().Hex()}
		err := global.Validate.Struct(input)
		assert.NoError(t, err)
	})

	t.Run("FeedIDSaiDinhDang", func(t *testing.T) {
		input := TemplateFeedAssociationInput{FeedID: "abc"}
		err := global.Validate.Struct(input)
		assert.Error(t, err, "FeedId sai định dạng phải trả về lỗi validate")
	})
}
