package tplhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/JoWinner/novu/internal/api/base/handler"
	messagesvc "github.com/JoWinner/novu/internal/api/message/service"
	tpldto "github.com/JoWinner/novu/internal/api/template/dto"
	tplmodels "github.com/JoWinner/novu/internal/api/template/models"
	tplsvc "github.com/JoWinner/novu/internal/api/template/service"
	"github.com/JoWinner/novu/internal/common"
	"github.com/JoWinner/novu/internal/logger"
	"github.com/JoWinner/novu/internal/utility"
)

// TemplateHandler xử lý các request liên quan đến MessageTemplate
type TemplateHandler struct {
	*basehdl.BaseHandler[tplmodels.MessageTemplate, tpldto.TemplateCreateInput, tpldto.TemplateUpdateInput]
	templateService *tplsvc.TemplateService
	messageService  *messagesvc.MessageService
}

// NewTemplateHandler tạo mới TemplateHandler.
// Cần MessageService để gán lại feed cho message khi feed của template đổi.
func NewTemplateHandler(messageService *messagesvc.MessageService) (*TemplateHandler, error) {
	templateService, err := tplsvc.NewTemplateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create template service: %v", err)
	}

	hdl := &TemplateHandler{
		BaseHandler:     basehdl.NewBaseHandler[tplmodels.MessageTemplate, tpldto.TemplateCreateInput, tpldto.TemplateUpdateInput](templateService),
		templateService: templateService,
		messageService:  messageService,
	}
	return hdl, nil
}

// HandleUpdateFeedAssociation gán feed cho template rồi gán lại feed cho toàn bộ
// message đã sinh từ template đó. Body: {"feedId": "..."} - để trống là gỡ khỏi feed.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - error: Lỗi nếu có
func (h *TemplateHandler) HandleUpdateFeedAssociation(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if err := h.ValidateEnvironmentAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		envID := h.GetActiveEnvironmentID(c)
		if envID == nil {
			h.HandleResponse(c, nil, common.ErrMissingEnvironment)
			return nil
		}

		var input tpldto.TemplateFeedAssociationInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var feedID *primitive.ObjectID
		if input.FeedID != "" {
			oid := utility.String2ObjectID(input.FeedID)
			feedID = &oid
		}

		templateID := utility.String2ObjectID(id)
		template, err := h.templateService.UpdateFeed(c.Context(), *envID, templateID, feedID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Message đã gửi phải theo feed mới để filter feed phía subscriber nhất quán
		modified, err := h.messageService.UpdateFeedByTemplateId(c.Context(), *envID, templateID, feedID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogCRUD("update", "message_template", id, c, map[string]interface{}{
			"feed_id":           input.FeedID,
			"messages_modified": modified,
		})

		h.HandleResponse(c, template, nil)
		return nil
	})
}
