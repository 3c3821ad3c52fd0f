package msghdl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/JoWinner/novu/internal/api/base/handler"
	feedsvc "github.com/JoWinner/novu/internal/api/feed/service"
	msgdto "github.com/JoWinner/novu/internal/api/message/dto"
	"github.com/JoWinner/novu/internal/api/message/models"
	messagesvc "github.com/JoWinner/novu/internal/api/message/service"
	subsvc "github.com/JoWinner/novu/internal/api/subscriber/service"
	tplsvc "github.com/JoWinner/novu/internal/api/template/service"
	"github.com/JoWinner/novu/internal/common"
	"github.com/JoWinner/novu/internal/global"
	"github.com/JoWinner/novu/internal/logger"
	"github.com/JoWinner/novu/internal/utility"
)

// MessageHandler xử lý các request liên quan đến Message
type MessageHandler struct {
	*basehdl.BaseHandler[models.Message, msgdto.MessageTriggerInput, msgdto.MessageUpdateInput]
	messageService  *messagesvc.MessageService
	templateService *tplsvc.TemplateService
}

// NewMessageHandler tạo mới MessageHandler
func NewMessageHandler() (*MessageHandler, error) {
	feedService, err := feedsvc.NewFeedService()
	if err != nil {
		return nil, fmt.Errorf("failed to create feed service: %v", err)
	}
	subscriberService, err := subsvc.NewSubscriberService()
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriber service: %v", err)
	}
	messageService, err := messagesvc.NewMessageService(feedService, subscriberService)
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %v", err)
	}
	templateService, err := tplsvc.NewTemplateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create template service: %v", err)
	}

	hdl := &MessageHandler{
		BaseHandler:     basehdl.NewBaseHandler[models.Message, msgdto.MessageTriggerInput, msgdto.MessageUpdateInput](messageService),
		messageService:  messageService,
		templateService: templateService,
	}
	return hdl, nil
}

// requireEnvAndID lấy environment từ context và validate ObjectID trong URL params.
// Trả về nil khi request không hợp lệ (response đã được ghi).
func (h *MessageHandler) requireEnvAndID(c fiber.Ctx) (*primitive.ObjectID, *primitive.ObjectID) {
	envID := h.GetActiveEnvironmentID(c)
	if envID == nil {
		h.HandleResponse(c, nil, common.ErrMissingEnvironment)
		return nil, nil
	}

	id := c.Params("id")
	if !primitive.IsValidObjectID(id) {
		h.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		))
		return nil, nil
	}

	oid := utility.String2ObjectID(id)
	return envID, &oid
}

// HandleTrigger tạo message từ workflow engine.
// Message không chỉ định feedId sẽ kế thừa feedId của template (nếu có).
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleTrigger(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		var input msgdto.MessageTriggerInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		model.OwnerEnvironmentID = *envID

		// Kế thừa feed từ template khi message không tự chỉ định feed
		if model.FeedID == nil && !model.TemplateID.IsZero() {
			template, err := h.templateService.FindOneById(c.Context(), model.TemplateID)
			if err == nil && template.OwnerEnvironmentID == *envID {
				model.FeedID = template.FeedID
			}
		}

		data, err := h.messageService.InsertOne(c.Context(), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleUpdateStatus cập nhật trạng thái delivery của message (provider callback)
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID, messageID := h.requireEnvAndID(c)
		if envID == nil {
			return nil
		}

		var input msgdto.MessageStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.messageService.UpdateMessageStatus(
			c.Context(), *envID, *messageID,
			input.Status, input.ProviderPayload, input.ErrorID, input.ErrorText,
		)
		if err == nil {
			logger.LogDelivery(input.Status, messageID.Hex(), c, map[string]interface{}{
				"errorId": input.ErrorID,
			})
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleChangeSeen đánh dấu message đã đọc/chưa đọc cho một subscriber
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleChangeSeen(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID, messageID := h.requireEnvAndID(c)
		if envID == nil {
			return nil
		}

		var input msgdto.MessageSeenInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.messageService.ChangeSeenStatus(
			c.Context(), *envID,
			utility.String2ObjectID(input.SubscriberID), *messageID,
			*input.Seen,
		)
		if err == nil {
			logger.LogAction("message_seen", c, map[string]interface{}{
				"message_id": messageID.Hex(),
				"seen":       *input.Seen,
			})
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// parseFeedPagination đọc page/limit và chặn limit theo cấu hình server.
// Limit không hợp lệ rơi về Feed_DefaultPageSize, vượt trần bị cắt về Feed_MaxPageSize.
func (h *MessageHandler) parseFeedPagination(c fiber.Ctx) (int64, int64) {
	page, limit := h.ParsePagination(c)

	cfg := global.MongoDB_ServerConfig
	if cfg != nil {
		if limit <= 0 {
			limit = int64(cfg.Feed_DefaultPageSize)
		}
		if cfg.Feed_MaxPageSize > 0 && limit > int64(cfg.Feed_MaxPageSize) {
			limit = int64(cfg.Feed_MaxPageSize)
		}
	}
	return page, limit
}

// parseSubscriberFeedQuery đọc các query param chung của nhóm endpoint feed:
// subscriberId (bắt buộc, hex), channel, feedIdentifier (phân tách bằng dấu phẩy),
// unassigned, seen (tri-state: vắng mặt / true / false).
func (h *MessageHandler) parseSubscriberFeedQuery(c fiber.Ctx) (primitive.ObjectID, string, models.SubscriberMessageQuery, error) {
	var query models.SubscriberMessageQuery

	subscriberIDStr := c.Query("subscriberId")
	if !primitive.IsValidObjectID(subscriberIDStr) {
		return primitive.NilObjectID, "", query, common.NewError(
			common.ErrCodeValidationInput,
			"Query param 'subscriberId' bắt buộc và phải là chuỗi hex 24 ký tự",
			common.StatusBadRequest,
			nil,
		)
	}

	channel := c.Query("channel")
	if channel != "" && !models.IsValidChannel(channel) {
		return primitive.NilObjectID, "", query, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Channel '%s' không hợp lệ. Các channel được hỗ trợ: in_app, email, sms, push, chat", channel),
			common.StatusBadRequest,
			nil,
		)
	}

	if feedIdentifiers := c.Query("feedIdentifier"); feedIdentifiers != "" {
		query.FeedIdentifiers = strings.Split(feedIdentifiers, ",")
	}
	if unassigned, err := strconv.ParseBool(c.Query("unassigned", "false")); err == nil {
		query.Unassigned = unassigned
	}
	if seenStr := c.Query("seen"); seenStr != "" {
		if seen, err := strconv.ParseBool(seenStr); err == nil {
			query.Seen = &seen
		}
	}

	return utility.String2ObjectID(subscriberIDStr), channel, query, nil
}

// HandleSubscriberFeed trả về message của một subscriber, phân trang, mới nhất trước
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleSubscriberFeed(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		subscriberID, channel, query, err := h.parseSubscriberFeedQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.parseFeedPagination(c)
		data, err := h.messageService.FindBySubscriberChannel(c.Context(), *envID, subscriberID, channel, query, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFeedCount đếm message của subscriber khớp bộ lọc
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleFeedCount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		subscriberID, channel, query, err := h.parseSubscriberFeedQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.messageService.GetTotalCount(c.Context(), *envID, subscriberID, channel, query)
		h.HandleResponse(c, map[string]interface{}{"count": count}, err)
		return nil
	})
}

// HandleUnseenCount đếm message chưa đọc của subscriber (badge counter)
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleUnseenCount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		subscriberID, channel, query, err := h.parseSubscriberFeedQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.messageService.GetUnseenCount(c.Context(), *envID, subscriberID, channel, query)
		h.HandleResponse(c, map[string]interface{}{"count": count}, err)
		return nil
	})
}

// HandleActivityFeed trả về activity feed của environment kèm thông tin
// subscriber/template. Query param: channels, templateIds (phân tách bằng dấu phẩy),
// emails, subscriberId (business identifier), transactionId, payload (object JSON,
// match đẳng thức trên key cấp cao nhất), page, limit.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleActivityFeed(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		var query models.FeedQuery
		if channels := c.Query("channels"); channels != "" {
			query.Channels = strings.Split(channels, ",")
			for _, channel := range query.Channels {
				if !models.IsValidChannel(channel) {
					h.HandleResponse(c, nil, common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Channel '%s' không hợp lệ. Các channel được hỗ trợ: in_app, email, sms, push, chat", channel),
						common.StatusBadRequest,
						nil,
					))
					return nil
				}
			}
		}
		if templateIDs := c.Query("templateIds"); templateIDs != "" {
			for _, idStr := range strings.Split(templateIDs, ",") {
				if !primitive.IsValidObjectID(idStr) {
					h.HandleResponse(c, nil, common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Template ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", idStr),
						common.StatusBadRequest,
						nil,
					))
					return nil
				}
				query.TemplateIDs = append(query.TemplateIDs, utility.String2ObjectID(idStr))
			}
		}
		if emails := c.Query("emails"); emails != "" {
			query.Emails = strings.Split(emails, ",")
		}
		query.SubscriberIdentifier = c.Query("subscriberId")
		query.TransactionID = c.Query("transactionId")
		if payloadStr := c.Query("payload"); payloadStr != "" {
			payload, err := utility.JSONToMap(payloadStr)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					"Query param 'payload' phải là object JSON hợp lệ",
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			query.Payload = payload
		}

		page, limit := h.parseFeedPagination(c)
		data, err := h.messageService.GetFeed(c.Context(), *envID, query, page, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleActivityStats đếm message theo ngày trong N ngày gần nhất (mặc định 30)
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleActivityStats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		days := int(utility.P2Int64(c.Query("days", "30")))
		if cfg := global.MongoDB_ServerConfig; cfg != nil && cfg.Activity_MaxDays > 0 && days > cfg.Activity_MaxDays {
			days = cfg.Activity_MaxDays
		}
		data, err := h.messageService.GetActivityGraphStats(c.Context(), *envID, days)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleFindDeleted trả về các message đã xóa mềm trong environment.
// Hỗ trợ lọc thêm qua query param: channel, subscriberId, transactionId.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleFindDeleted(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		extra := bson.M{}
		if channel := c.Query("channel"); channel != "" {
			extra["channel"] = channel
		}
		if subID := c.Query("subscriberId"); subID != "" {
			oid := utility.String2ObjectID(subID)
			if oid.IsZero() {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					"Query param 'subscriberId' phải là ObjectID hợp lệ",
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			extra["subscriberId"] = oid
		}
		if transactionID := c.Query("transactionId"); transactionID != "" {
			extra["transactionId"] = transactionID
		}

		data, err := h.messageService.FindDeleted(c.Context(), *envID, extra)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleSoftDelete xóa mềm message theo ID. Document không bị xóa vật lý,
// chỉ bị loại khỏi feed và các count.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleSoftDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID, messageID := h.requireEnvAndID(c)
		if envID == nil {
			return nil
		}

		err := h.messageService.SoftDelete(c.Context(), *envID, *messageID)
		if err == nil {
			logger.LogAction("message_delete", c, map[string]interface{}{
				"message_id": messageID.Hex(),
			})
		}
		h.HandleResponse(c, map[string]interface{}{"deleted": err == nil}, err)
		return nil
	})
}

// HandleFindByNotificationIds trả về message thuộc danh sách notification.
// Danh sách ID được truyền qua query string dưới dạng mảng JSON.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *MessageHandler) HandleFindByNotificationIds(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		var ids []string
		idsStr := c.Query("ids", "[]")
		if err := json.Unmarshal([]byte(idsStr), &ids); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"Query param 'ids' phải là mảng JSON các chuỗi hex 24 ký tự",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		notificationIDs := make([]primitive.ObjectID, 0, len(ids))
		for _, idStr := range ids {
			if !primitive.IsValidObjectID(idStr) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", idStr),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			notificationIDs = append(notificationIDs, utility.String2ObjectID(idStr))
		}

		data, err := h.messageService.FindByNotificationIds(c.Context(), *envID, notificationIDs)
		h.HandleResponse(c, data, err)
		return nil
	})
}
