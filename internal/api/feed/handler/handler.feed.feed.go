package feedhdl

import (
	"fmt"

	basehdl "github.com/JoWinner/novu/internal/api/base/handler"
	feeddto "github.com/JoWinner/novu/internal/api/feed/dto"
	feedmodels "github.com/JoWinner/novu/internal/api/feed/models"
	feedsvc "github.com/JoWinner/novu/internal/api/feed/service"
)

// FeedHandler xử lý các request liên quan đến Feed
type FeedHandler struct {
	*basehdl.BaseHandler[feedmodels.Feed, feeddto.FeedCreateInput, feeddto.FeedUpdateInput]
	feedService *feedsvc.FeedService
}

// NewFeedHandler tạo mới FeedHandler
func NewFeedHandler() (*FeedHandler, error) {
	feedService, err := feedsvc.NewFeedService()
	if err != nil {
		return nil, fmt.Errorf("failed to create feed service: %v", err)
	}

	hdl := &FeedHandler{
		BaseHandler: basehdl.NewBaseHandler[feedmodels.Feed, feeddto.FeedCreateInput, feeddto.FeedUpdateInput](feedService),
		feedService: feedService,
	}
	return hdl, nil
}
