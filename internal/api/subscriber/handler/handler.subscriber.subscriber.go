package subhdl

import (
	"fmt"

	basehdl "github.com/JoWinner/novu/internal/api/base/handler"
	subdto "github.com/JoWinner/novu/internal/api/subscriber/dto"
	submodels "github.com/JoWinner/novu/internal/api/subscriber/models"
	subsvc "github.com/JoWinner/novu/internal/api/subscriber/service"
)

// SubscriberHandler xử lý các request liên quan đến Subscriber
type SubscriberHandler struct {
	*basehdl.BaseHandler[submodels.Subscriber, subdto.SubscriberCreateInput, subdto.SubscriberUpdateInput]
	subscriberService *subsvc.SubscriberService
}

// NewSubscriberHandler tạo mới SubscriberHandler
func NewSubscriberHandler() (*SubscriberHandler, error) {
	subscriberService, err := subsvc.NewSubscriberService()
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriber service: %v", err)
	}

	hdl := &SubscriberHandler{
		BaseHandler:       basehdl.NewBaseHandler[submodels.Subscriber, subdto.SubscriberCreateInput, subdto.SubscriberUpdateInput](subscriberService),
		subscriberService: subscriberService,
	}
	return hdl, nil
}
