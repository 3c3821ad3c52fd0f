package msgdto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JoWinner/novu/internal/global"
)

// validInput trả về một MessageTriggerInput hợp lệ làm baseline cho các test case
func validInput() MessageTriggerInput {
	return MessageTriggerInput{
		SubscriberID: primitive.NewObjectID().Hex(),
		Channel:      "in_app",
		Subject:      "Chao mung ban moi",
		Content:      "Noi dung thong bao",
	}
}

// TestMessageTriggerInputValidation kiểm tra các rule validate của trigger input
func TestMessageTriggerInputValidation(t *testing.T) {
	global.InitValidator()

	t.Run("InputHopLe", func(t *testing.T) {
		input := validInput()
		err := global.Validate.Struct(input)
		assert.NoError(t, err, "Input hợp lệ không được trả về lỗi validate")
	})

	t.Run("ThieuSubscriberID", func(t *testing.T) {
		input := validInput()
		input.SubscriberID = ""
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Thiếu subscriberId phải trả về lỗi validate")
	})

	t.Run("SubscriberIDKhongPhaiHex", func(t *testing.T) {
		input := validInput()
		input.SubscriberID = "zzzzzzzzzzzzzzzzzzzzzzzz"
		err := global.Validate.Struct(input)
		assert.Error(t, err, "SubscriberId không phải hex phải trả về lỗi validate")
	})

	t.Run("SubscriberIDSaiDoDai", func(t *testing.T) {
		input := validInput()
		input.SubscriberID = "abc123"
		err := global.Validate.Struct(input)
		assert.Error(t, err, "SubscriberId sai độ dài phải trả về lỗi validate")
	})

	t.Run("ChannelKhongHopLe", func(t *testing.T) {
		input := validInput()
		input.Channel = "fax"
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Channel ngoài danh sách cho phép phải trả về lỗi validate")
	})

	t.Run("ThieuChannel", func(t *testing.T) {
		input := validInput()
		input.Channel = ""
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Thiếu channel phải trả về lỗi validate")
	})

	t.Run("FeedIDOptional", func(t *testing.T) {
		input := validInput()
		input.FeedID = ""
		err := global.Validate.Struct(input)
		assert.NoError(t, err, "FeedId rỗng phải được chấp nhận vì là optional")

		input.FeedID = primitive.NewObjectID().Hex()
		err = global.Validate.Struct(input)
		assert.NoError(t, err, "FeedId hex hợp lệ phải được chấp nhận")

		input.FeedID = "khong-hop-le"
		err = global.Validate.Struct(input)
		assert.Error(t, err, "FeedId không phải hex phải trả về lỗi validate")
	})

	t.Run("SubjectChuaXSS", func(t *testing.T) {
		input := validInput()
		input.Subject = "<script>alert(1)</script>"
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Subject chứa script tag phải trả về lỗi validate")
	})
}

// TestMessageStatusInputValidation kiểm tra các rule validate của status input
func TestMessageStatusInputValidation(t *testing.T) {
	global.InitValidator()

	t.Run("StatusHopLe", func(t *testing.T) {
		for _, status := range []string{"pending", "sent", "error", "warning"} {
			input := MessageStatusInput{Status: status}
			err := global.Validate.Struct(input)
			assert.NoError(t, err, "Status '%s' phải được chấp nhận", status)
		}
	})

	t.Run("StatusKhongHopLe", func(t *testing.T) {
		input := MessageStatusInput{Status: "delivered"}
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Status ngoài danh sách cho phép phải trả về lỗi validate")
	})

	t.Run("ThieuStatus", func(t *testing.T) {
		input := MessageStatusInput{}
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Thiếu status phải trả về lỗi validate")
	})
}

// TestMessageSeenInputValidation kiểm tra phân biệt thiếu trường seen với giá trị false
func TestMessageSeenInputValidation(t *testing.T) {
	global.InitValidator()

	seenFalse := false
	seenTrue := true

	t.Run("SeenFalseHopLe", func(t *testing.T) {
		input := MessageSeenInput{
			SubscriberID: primitive.NewObjectID().Hex(),
			Seen:         &seenFalse,
		}
		err := global.Validate.Struct(input)
		assert.NoError(t, err, "Seen=false qua con trỏ phải được chấp nhận")
	})

	t.Run("SeenTrueHopLe", func(t *testing.T) {
		input := MessageSeenInput{
			SubscriberID: primitive.NewObjectID().Hex(),
			Seen:         &seenTrue,
		}
		err := global.Validate.Struct(input)
		assert.NoError(t, err)
	})

	t.Run("ThieuSeen", func(t *testing.T) {
		input := MessageSeenInput{
			SubscriberID: primitive.NewObjectID().Hex(),
		}
		err := global.Validate.Struct(input)
		assert.Error(t, err, "Thiếu trường seen phải trả về lỗi validate")
	})
}
